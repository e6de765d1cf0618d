package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/puzzlesmarathon/registration-backend/ptr"
	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

func TestHTTPRelayForward(t *testing.T) {
	t.Run("posts the payload verbatim", func(t *testing.T) {
		var gotBody []byte
		var gotContentType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		relay := NewHTTPRelay(0)
		err := relay.Forward(context.Background(), srv.URL, []byte(`{"name":"Alice"}`))
		require.NoError(t, err)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, `{"name":"Alice"}`, string(gotBody))
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer srv.Close()

		err := NewHTTPRelay(0).Forward(context.Background(), srv.URL, []byte(`{}`))
		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		err := NewHTTPRelay(20*time.Millisecond).Forward(context.Background(), srv.URL, []byte(`{}`))
		assert.Error(t, err)
	})

	t.Run("invalid url", func(t *testing.T) {
		err := NewHTTPRelay(0).Forward(context.Background(), "://nope", []byte(`{}`))
		assert.Error(t, err)
	})
}

func TestAdminNotifier(t *testing.T) {
	var got adminFailurePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	notifier := NewAdminNotifier(NewHTTPRelay(0), srv.URL)
	failure := registration.NewFinalizeFailure("cs_9", "https://relay.example", registration.NewRelayFailedError("relay down", nil))
	require.NoError(t, notifier.NotifyFinalizeFailure(context.Background(), failure))

	assert.Equal(t, "cs_9", got.SessionID)
	assert.Equal(t, "https://relay.example", got.RelayURL)
	assert.Equal(t, string(registration.REASON_RELAY_FAILED), got.Reason)
	assert.Contains(t, got.Error, "relay down")
}

func TestSheetsLedgerRecordPaid(t *testing.T) {
	var appended sheetsv4.ValueRange
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&appended))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ledger, err := NewSheetsLedger(context.Background(), "sheet-123",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	reg := registration.Registration{
		ID:               "reg-1",
		Type:             registration.SPONSOR_GOLD,
		Data:             json.RawMessage(`{"company":"Acme"}`),
		Status:           registration.PAID,
		SessionReference: ptr.String("cs_1"),
		CreatedAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ledger.RecordPaid(context.Background(), reg))

	assert.True(t, strings.Contains(path, "sheet-123"))
	assert.True(t, strings.HasSuffix(path, ":append"))
	require.Len(t, appended.Values, 1)
	row := appended.Values[0]
	assert.Equal(t, "reg-1", row[0])
	assert.Equal(t, "sponsor_gold", row[1])
	assert.Equal(t, "PAID", row[2])
	assert.Equal(t, "cs_1", row[3])
	assert.Equal(t, "2026-03-01T12:00:00Z", row[4])
	assert.Equal(t, `{"company":"Acme"}`, row[6])
}
