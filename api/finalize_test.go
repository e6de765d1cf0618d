package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/puzzlesmarathon/registration-backend/ptr"
	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidProcessor(registrationId string) *mockPaymentProcessor {
	return &mockPaymentProcessor{
		RetrieveSessionFunc: func(ctx context.Context, sessionId string) (registration.CheckoutSession, error) {
			return registration.CheckoutSession{
				ID:            sessionId,
				PaymentStatus: registration.PAYMENT_STATUS_PAID,
				Metadata:      map[string]string{registration.METADATA_REGISTRATION_ID: registrationId},
			}, nil
		},
	}
}

func storedRegistrationDB(reg registration.Registration) *mockDB {
	return &mockDB{
		GetRegistrationFunc: func(ctx context.Context, id string) (registration.Registration, error) {
			if id != reg.ID {
				return registration.Registration{}, registration.NewRegistrationDoesNotExistsError("not found", nil)
			}
			return reg, nil
		},
	}
}

func TestPostFinalizeRegistration(t *testing.T) {
	pending := registration.Registration{
		ID:      "reg-1",
		Version: 1,
		Type:    registration.PARTICIPANT,
		Data:    json.RawMessage(`{"name":"Alice"}`),
		Status:  registration.PENDING,
	}

	t.Run("forwards and records the paid registration", func(t *testing.T) {
		var forwardedTo string
		relay := &mockRelay{
			ForwardFunc: func(ctx context.Context, url string, payload []byte) error {
				forwardedTo = url
				return nil
			},
		}
		ledger := &mockPaidLedger{}
		notifier := &mockFailureNotifier{}
		api := newTestAPI(storedRegistrationDB(pending), paidProcessor("reg-1"), relay, notifier, ledger)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1", RelayUrl: ptr.String("https://relay.example/f/abc")},
		})
		require.NoError(t, err)

		assert.Equal(t, PostFinalizeRegistration200JSONResponse{Success: true}, resp)
		assert.Equal(t, "https://relay.example/f/abc", forwardedTo)
		require.Len(t, ledger.recorded, 1)
		assert.Equal(t, registration.PAID, ledger.recorded[0].Status)
		assert.Empty(t, notifier.failures)
	})

	t.Run("accepts the legacy formspreeUrl field", func(t *testing.T) {
		var forwardedTo string
		relay := &mockRelay{
			ForwardFunc: func(ctx context.Context, url string, payload []byte) error {
				forwardedTo = url
				return nil
			},
		}
		api := newTestAPI(storedRegistrationDB(pending), paidProcessor("reg-1"), relay, nil, nil)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1", FormspreeUrl: ptr.String("https://formspree.io/f/xyz")},
		})
		require.NoError(t, err)
		assert.IsType(t, PostFinalizeRegistration200JSONResponse{}, resp)
		assert.Equal(t, "https://formspree.io/f/xyz", forwardedTo)
	})

	t.Run("missing relay url", func(t *testing.T) {
		api := newTestAPI(storedRegistrationDB(pending), paidProcessor("reg-1"), &mockRelay{}, nil, nil)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1"},
		})
		require.NoError(t, err)

		r, ok := resp.(PostFinalizeRegistration400JSONResponse)
		require.True(t, ok, "unexpected response type: %T", resp)
		assert.Equal(t, InputValidationError, r.Code)
	})

	t.Run("unpaid session", func(t *testing.T) {
		db := storedRegistrationDB(pending)
		db.UpdateRegistrationToPaidFunc = func(ctx context.Context, reg registration.Registration) error {
			t.Fatal("registration must not be updated")
			return nil
		}
		notifier := &mockFailureNotifier{}
		api := newTestAPI(db, &mockPaymentProcessor{}, &mockRelay{}, notifier, nil)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1", RelayUrl: ptr.String("https://relay.example")},
		})
		require.NoError(t, err)

		r, ok := resp.(PostFinalizeRegistration400JSONResponse)
		require.True(t, ok, "unexpected response type: %T", resp)
		assert.Equal(t, PaymentNotCompleted, r.Code)
		assert.Empty(t, notifier.failures)
	})

	t.Run("unknown registration", func(t *testing.T) {
		api := newTestAPI(storedRegistrationDB(pending), paidProcessor("reg-missing"), &mockRelay{}, nil, nil)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1", RelayUrl: ptr.String("https://relay.example")},
		})
		require.NoError(t, err)

		r, ok := resp.(PostFinalizeRegistration404JSONResponse)
		require.True(t, ok, "unexpected response type: %T", resp)
		assert.Equal(t, NotFound, r.Code)
	})

	t.Run("relay failure notifies admins", func(t *testing.T) {
		relay := &mockRelay{
			ForwardFunc: func(ctx context.Context, url string, payload []byte) error {
				return errors.New("connection refused")
			},
		}
		notifier := &mockFailureNotifier{err: errors.New("notifier also down")}
		ledger := &mockPaidLedger{}
		api := newTestAPI(storedRegistrationDB(pending), paidProcessor("reg-1"), relay, notifier, ledger)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1", RelayUrl: ptr.String("https://relay.example")},
		})
		require.NoError(t, err)

		r, ok := resp.(PostFinalizeRegistration500JSONResponse)
		require.True(t, ok, "unexpected response type: %T", resp)
		assert.Equal(t, InternalError, r.Code)

		require.Len(t, notifier.failures, 1)
		assert.Equal(t, "cs_1", notifier.failures[0].SessionID)
		assert.Equal(t, registration.REASON_RELAY_FAILED, notifier.failures[0].Reason)
		assert.Empty(t, ledger.recorded)
	})

	t.Run("ledger failure does not fail the request", func(t *testing.T) {
		ledger := &mockPaidLedger{err: errors.New("sheets quota")}
		api := newTestAPI(storedRegistrationDB(pending), paidProcessor("reg-1"), &mockRelay{}, nil, ledger)

		resp, err := api.PostFinalizeRegistration(context.Background(), PostFinalizeRegistrationRequestObject{
			Body: &FinalizeRegistrationRequest{SessionId: "cs_1", RelayUrl: ptr.String("https://relay.example")},
		})
		require.NoError(t, err)
		assert.Equal(t, PostFinalizeRegistration200JSONResponse{Success: true}, resp)
	})
}
