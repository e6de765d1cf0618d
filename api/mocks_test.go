package api

import (
	"context"
	"log/slog"

	"github.com/Rhymond/go-money"
	"github.com/puzzlesmarathon/registration-backend/registration"
)

var noopLogger = slog.New(slog.DiscardHandler)

var testCheckoutSettings = registration.CheckoutSettings{
	SiteURL:   "https://puzzlesmarathon.com",
	EventName: "Puzzles Marathon",
	Currency:  money.USD,
	Tiers:     registration.DefaultTierTable(money.USD),
}

type mockDB struct {
	CreateRegistrationFunc       func(ctx context.Context, reg registration.Registration) error
	GetRegistrationFunc          func(ctx context.Context, id string) (registration.Registration, error)
	UpdateRegistrationToPaidFunc func(ctx context.Context, reg registration.Registration) error
}

func (m *mockDB) CreateRegistration(ctx context.Context, reg registration.Registration) error {
	if m.CreateRegistrationFunc != nil {
		return m.CreateRegistrationFunc(ctx, reg)
	}
	return nil
}

func (m *mockDB) GetRegistration(ctx context.Context, id string) (registration.Registration, error) {
	if m.GetRegistrationFunc != nil {
		return m.GetRegistrationFunc(ctx, id)
	}
	return registration.Registration{}, registration.NewRegistrationDoesNotExistsError("not found", nil)
}

func (m *mockDB) UpdateRegistrationToPaid(ctx context.Context, reg registration.Registration) error {
	if m.UpdateRegistrationToPaidFunc != nil {
		return m.UpdateRegistrationToPaidFunc(ctx, reg)
	}
	return nil
}

type mockPaymentProcessor struct {
	CreateCheckoutSessionFunc func(ctx context.Context, params registration.CheckoutParams) (registration.CheckoutSession, error)
	RetrieveSessionFunc       func(ctx context.Context, sessionId string) (registration.CheckoutSession, error)
}

func (m *mockPaymentProcessor) CreateCheckoutSession(ctx context.Context, params registration.CheckoutParams) (registration.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return registration.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (m *mockPaymentProcessor) RetrieveSession(ctx context.Context, sessionId string) (registration.CheckoutSession, error) {
	if m.RetrieveSessionFunc != nil {
		return m.RetrieveSessionFunc(ctx, sessionId)
	}
	return registration.CheckoutSession{ID: sessionId, PaymentStatus: registration.PAYMENT_STATUS_UNPAID}, nil
}

type mockRelay struct {
	ForwardFunc func(ctx context.Context, url string, payload []byte) error
}

func (m *mockRelay) Forward(ctx context.Context, url string, payload []byte) error {
	if m.ForwardFunc != nil {
		return m.ForwardFunc(ctx, url, payload)
	}
	return nil
}

type mockFailureNotifier struct {
	failures []registration.FinalizeFailure
	err      error
}

func (m *mockFailureNotifier) NotifyFinalizeFailure(ctx context.Context, failure registration.FinalizeFailure) error {
	m.failures = append(m.failures, failure)
	return m.err
}

type mockPaidLedger struct {
	recorded []registration.Registration
	err      error
}

func (m *mockPaidLedger) RecordPaid(ctx context.Context, reg registration.Registration) error {
	m.recorded = append(m.recorded, reg)
	return m.err
}

func newTestAPI(db DB, processor registration.PaymentProcessor, relay registration.Relay, notifier registration.FailureNotifier, ledger registration.PaidLedger) *API {
	return NewAPI(db, noopLogger, LOCAL, processor, testCheckoutSettings, relay, notifier, ledger)
}
