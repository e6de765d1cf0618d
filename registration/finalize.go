package registration

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/puzzlesmarathon/registration-backend/registration")

// Relay delivers a finalized registration payload to an external sink.
type Relay interface {
	Forward(ctx context.Context, url string, payload []byte) error
}

// Finalize confirms the payment for sessionId, forwards the stored form data
// to relayURL and marks the registration paid. Steps run in order with no
// rollback. Calling it again for the same session forwards the data again.
func Finalize(ctx context.Context, sessionId string, relayURL string, repo Repository, processor PaymentProcessor, relay Relay) (Registration, error) {
	ctx, span := tracer.Start(ctx, "registration.Finalize", trace.WithAttributes(
		attribute.String("checkout.session_id", sessionId),
	))
	defer span.End()

	reg, err := finalize(ctx, sessionId, relayURL, repo, processor, relay)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "finalize failed")
		return Registration{}, err
	}

	span.SetAttributes(attribute.String("registration.id", reg.ID))
	return reg, nil
}

func finalize(ctx context.Context, sessionId string, relayURL string, repo Repository, processor PaymentProcessor, relay Relay) (Registration, error) {
	session, err := processor.RetrieveSession(ctx, sessionId)
	if err != nil {
		return Registration{}, NewPaymentProcessorFailureError(fmt.Sprintf("Failed to retrieve session %q", sessionId), err)
	}

	if session.PaymentStatus != PAYMENT_STATUS_PAID {
		return Registration{}, NewPaymentNotCompletedError(sessionId, session.PaymentStatus)
	}

	registrationId := session.Metadata[METADATA_REGISTRATION_ID]
	if registrationId == "" {
		return Registration{}, NewRegistrationDoesNotExistsError(fmt.Sprintf("Session %q has no registration id in its metadata", sessionId), nil)
	}

	reg, err := repo.GetRegistration(ctx, registrationId)
	if err != nil {
		return Registration{}, err
	}

	err = forward(ctx, relay, relayURL, reg)
	if err != nil {
		return Registration{}, err
	}

	reg.Status = PAID
	reg.SessionReference = &sessionId
	reg.Version++

	err = repo.UpdateRegistrationToPaid(ctx, reg)
	if err != nil {
		return Registration{}, err
	}

	return reg, nil
}

func forward(ctx context.Context, relay Relay, relayURL string, reg Registration) error {
	ctx, span := tracer.Start(ctx, "registration.forward")
	defer span.End()

	err := relay.Forward(ctx, relayURL, reg.Data)
	if err != nil {
		var regErr *Error
		if errors.As(err, &regErr) {
			return err
		}
		return NewRelayFailedError(fmt.Sprintf("Failed to forward registration %q", reg.ID), err)
	}

	return nil
}
