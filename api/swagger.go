package api

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/puzzlesmarathon/registration-backend/spec"
)

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	swagger, err := openapi3.NewLoader().LoadFromData(spec.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	return swagger, nil
}
