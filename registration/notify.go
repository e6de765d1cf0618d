package registration

import (
	"context"
	"errors"
	"time"
)

type FinalizeFailure struct {
	SessionID  string
	RelayURL   string
	Reason     ErrorReason
	Err        error
	OccurredAt time.Time
}

func NewFinalizeFailure(sessionId string, relayURL string, err error) FinalizeFailure {
	failure := FinalizeFailure{
		SessionID:  sessionId,
		RelayURL:   relayURL,
		Err:        err,
		OccurredAt: time.Now().UTC(),
	}

	var regErr *Error
	if errors.As(err, &regErr) {
		failure.Reason = regErr.Reason
	}

	return failure
}

type FailureNotifier interface {
	NotifyFinalizeFailure(ctx context.Context, failure FinalizeFailure) error
}

// PaidLedger keeps a copy of every registration that finalized successfully.
type PaidLedger interface {
	RecordPaid(ctx context.Context, reg Registration) error
}

// FailureNotifiers fans a failure out to every notifier and joins their errors.
type FailureNotifiers []FailureNotifier

func (n FailureNotifiers) NotifyFinalizeFailure(ctx context.Context, failure FinalizeFailure) error {
	var errs []error
	for _, notifier := range n {
		err := notifier.NotifyFinalizeFailure(ctx, failure)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
