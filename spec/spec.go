// Package spec embeds the OpenAPI document served by the api package.
package spec

import _ "embed"

//go:embed api.yaml
var OpenAPI []byte
