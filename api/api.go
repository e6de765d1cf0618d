//go:generate go tool oapi-codegen --config openapi-codegen-config.yaml ../spec/api.yaml
package api

import (
	"context"
	"log/slog"

	"github.com/puzzlesmarathon/registration-backend/registration"
	"go.opentelemetry.io/otel/trace"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

type DB interface {
	registration.Repository
}

type API struct {
	db               DB
	logger           *slog.Logger
	env              Environment
	processor        registration.PaymentProcessor
	checkoutSettings registration.CheckoutSettings
	relay            registration.Relay
	failureNotifier  registration.FailureNotifier
	paidLedger       registration.PaidLedger
	tracerProvider   trace.TracerProvider
}

var _ StrictServerInterface = (*API)(nil)

// NewAPI wires the handlers. failureNotifier and paidLedger may be nil.
func NewAPI(
	db DB,
	logger *slog.Logger,
	env Environment,
	processor registration.PaymentProcessor,
	checkoutSettings registration.CheckoutSettings,
	relay registration.Relay,
	failureNotifier registration.FailureNotifier,
	paidLedger registration.PaidLedger,
) *API {
	return &API{
		db:               db,
		logger:           logger,
		env:              env,
		processor:        processor,
		checkoutSettings: checkoutSettings,
		relay:            relay,
		failureNotifier:  failureNotifier,
		paidLedger:       paidLedger,
	}
}

// WithTracerProvider overrides the global tracer provider for server spans.
func (a *API) WithTracerProvider(tp trace.TracerProvider) *API {
	a.tracerProvider = tp
	return a
}

func (a *API) getLoggerOrBaseLogger(ctx context.Context) *slog.Logger {
	if logger, ok := getLoggerFromCtx(ctx); ok {
		return logger
	}
	return a.logger
}

func (a *API) GetHealth(ctx context.Context, request GetHealthRequestObject) (GetHealthResponseObject, error) {
	return GetHealth200JSONResponse{Status: "ok"}, nil
}
