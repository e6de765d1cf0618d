package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/puzzlesmarathon/registration-backend/registration"
)

func (a *API) PostSaveRegistration(ctx context.Context, request PostSaveRegistrationRequestObject) (PostSaveRegistrationResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		return PostSaveRegistration400JSONResponse{BadRequestJSONResponse{
			Code:    EmptyBody,
			Message: "Request body is required",
		}}, nil
	}

	var data json.RawMessage
	if request.Body.Data != nil {
		data = *request.Body.Data
	}

	reg, err := registration.SaveRegistration(ctx, a.db, registration.Tier(request.Body.Type), data)
	if err != nil {
		logger.Error("Failed to save registration", slog.String("error", err.Error()), slog.String("type", request.Body.Type))

		return PostSaveRegistration500JSONResponse{InternalErrorJSONResponse{
			Code:    InternalError,
			Message: "Failed to save registration",
		}}, nil
	}

	logger.Info("saved registration", slog.String("registration-id", reg.ID), slog.String("type", string(reg.Type)))

	return PostSaveRegistration200JSONResponse{RegistrationId: reg.ID}, nil
}
