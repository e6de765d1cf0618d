package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/puzzlesmarathon/registration-backend/registration"
)

var _ registration.FailureNotifier = &AdminNotifier{}

type adminFailurePayload struct {
	Subject    string    `json:"_subject"`
	SessionID  string    `json:"sessionId"`
	RelayURL   string    `json:"relayUrl"`
	Reason     string    `json:"reason"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AdminNotifier posts finalization failures to a fixed admin relay endpoint.
type AdminNotifier struct {
	relay    registration.Relay
	adminURL string
}

func NewAdminNotifier(relay registration.Relay, adminURL string) *AdminNotifier {
	return &AdminNotifier{
		relay:    relay,
		adminURL: adminURL,
	}
}

func (n *AdminNotifier) NotifyFinalizeFailure(ctx context.Context, failure registration.FinalizeFailure) error {
	payload := adminFailurePayload{
		Subject:    "Registration finalization failed",
		SessionID:  failure.SessionID,
		RelayURL:   failure.RelayURL,
		Reason:     string(failure.Reason),
		OccurredAt: failure.OccurredAt,
	}
	if failure.Err != nil {
		payload.Error = failure.Err.Error()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal admin notification: %w", err)
	}

	return n.relay.Forward(ctx, n.adminURL, body)
}
