package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/puzzlesmarathon/registration-backend/registration"
)

func (a *API) PostCreateSession(ctx context.Context, request PostCreateSessionRequestObject) (PostCreateSessionResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		return PostCreateSession400JSONResponse{BadRequestJSONResponse{
			Code:    EmptyBody,
			Message: "Request body is required",
		}}, nil
	}

	session, err := registration.CreateTierCheckout(ctx, a.processor, a.checkoutSettings, registration.Tier(request.Body.Type), request.Body.RegistrationId)
	if err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) && regErr.Reason == registration.REASON_INVALID_CHECKOUT_TYPE {
			return PostCreateSession400JSONResponse{BadRequestJSONResponse{
				Code:    InvalidCheckoutType,
				Message: "Invalid checkout type",
			}}, nil
		}

		logger.Error("Failed to create checkout session",
			slog.String("error", err.Error()),
			slog.String("type", request.Body.Type),
			slog.String("registration-id", request.Body.RegistrationId),
		)

		return PostCreateSession500JSONResponse{InternalErrorJSONResponse{
			Code:    InternalError,
			Message: "Failed to create checkout session",
		}}, nil
	}

	return PostCreateSession200JSONResponse{Url: session.URL}, nil
}

func (a *API) PostCreateDonationSession(ctx context.Context, request PostCreateDonationSessionRequestObject) (PostCreateDonationSessionResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		return PostCreateDonationSession400JSONResponse{BadRequestJSONResponse{
			Code:    EmptyBody,
			Message: "Request body is required",
		}}, nil
	}

	session, err := registration.CreateDonationCheckout(ctx, a.processor, a.checkoutSettings, request.Body.Amount, request.Body.RegistrationId)
	if err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) && regErr.Reason == registration.REASON_INVALID_DONATION_AMOUNT {
			return PostCreateDonationSession400JSONResponse{BadRequestJSONResponse{
				Code:    InputValidationError,
				Message: "Donation amount is out of range",
			}}, nil
		}

		logger.Error("Failed to create donation checkout session",
			slog.String("error", err.Error()),
			slog.Float64("amount", request.Body.Amount),
			slog.String("registration-id", request.Body.RegistrationId),
		)

		return PostCreateDonationSession500JSONResponse{InternalErrorJSONResponse{
			Code:    InternalError,
			Message: "Failed to create donation checkout session",
		}}, nil
	}

	return PostCreateDonationSession200JSONResponse{Url: session.URL}, nil
}
