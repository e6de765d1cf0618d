package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/puzzlesmarathon/registration-backend/registration"
)

func (a *API) PostFinalizeRegistration(ctx context.Context, request PostFinalizeRegistrationRequestObject) (PostFinalizeRegistrationResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	if request.Body == nil {
		return PostFinalizeRegistration400JSONResponse{BadRequestJSONResponse{
			Code:    EmptyBody,
			Message: "Request body is required",
		}}, nil
	}

	relayURL := relayURLFromRequest(*request.Body)
	if relayURL == "" {
		return PostFinalizeRegistration400JSONResponse{BadRequestJSONResponse{
			Code:    InputValidationError,
			Message: "relayUrl is required",
		}}, nil
	}

	sessionId := request.Body.SessionId
	logger = logger.With(slog.String("session-id", sessionId))

	reg, err := registration.Finalize(ctx, sessionId, relayURL, a.db, a.processor, a.relay)
	if err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) {
			switch regErr.Reason {
			case registration.REASON_PAYMENT_NOT_COMPLETED:
				logger.Info("finalize attempted before payment completed", slog.String("error", err.Error()))

				return PostFinalizeRegistration400JSONResponse{BadRequestJSONResponse{
					Code:    PaymentNotCompleted,
					Message: "Payment not completed",
				}}, nil
			case registration.REASON_REGISTRATION_DOES_NOT_EXIST:
				logger.Warn("finalize referenced an unknown registration", slog.String("error", err.Error()))

				return PostFinalizeRegistration404JSONResponse{NotFoundJSONResponse{
					Code:    NotFound,
					Message: "Registration not found",
				}}, nil
			}
		}

		logger.Error("Failed to finalize registration", slog.String("error", err.Error()))
		a.notifyFinalizeFailure(ctx, logger, registration.NewFinalizeFailure(sessionId, relayURL, err))

		return PostFinalizeRegistration500JSONResponse{InternalErrorJSONResponse{
			Code:    InternalError,
			Message: "Failed to finalize registration",
		}}, nil
	}

	logger.Info("finalized registration", slog.String("registration-id", reg.ID), slog.String("type", string(reg.Type)))
	a.recordPaid(ctx, logger, reg)

	return PostFinalizeRegistration200JSONResponse{Success: true}, nil
}

// relayURLFromRequest prefers relayUrl over the legacy formspreeUrl field.
func relayURLFromRequest(body FinalizeRegistrationRequest) string {
	if body.RelayUrl != nil && *body.RelayUrl != "" {
		return *body.RelayUrl
	}
	if body.FormspreeUrl != nil {
		return *body.FormspreeUrl
	}
	return ""
}

func (a *API) notifyFinalizeFailure(ctx context.Context, logger *slog.Logger, failure registration.FinalizeFailure) {
	if a.failureNotifier == nil {
		return
	}

	// the caller may already be gone, the alert should still go out
	err := a.failureNotifier.NotifyFinalizeFailure(context.WithoutCancel(ctx), failure)
	if err != nil {
		logger.Error("failed to notify admins of finalize failure", slog.String("error", err.Error()))
	}
}

func (a *API) recordPaid(ctx context.Context, logger *slog.Logger, reg registration.Registration) {
	if a.paidLedger == nil {
		return
	}

	err := a.paidLedger.RecordPaid(context.WithoutCancel(ctx), reg)
	if err != nil {
		logger.Error("failed to record paid registration in ledger", slog.String("error", err.Error()), slog.String("registration-id", reg.ID))
	}
}
