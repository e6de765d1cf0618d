package registration

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Repository persists registrations. Implementations return *Error values with
// REASON_REGISTRATION_ALREADY_EXISTS, REASON_REGISTRATION_DOES_NOT_EXIST or
// REASON_VERSION_CONFLICT so callers can branch on the reason.
type Repository interface {
	CreateRegistration(ctx context.Context, reg Registration) error
	GetRegistration(ctx context.Context, id string) (Registration, error)
	// UpdateRegistrationToPaid writes reg only if the stored version is reg.Version-1.
	// Callers bump Version before calling; a mismatch is a version conflict.
	UpdateRegistrationToPaid(ctx context.Context, reg Registration) error
}

// Registration is one submitted form and its payment state.
type Registration struct {
	ID               string
	// Version starts at 1 on create and grows by one on every conditional write.
	Version          int
	Type             Tier
	Data             json.RawMessage
	Status           Status
	SessionReference *string
	CreatedAt        time.Time
}

// SaveRegistration stores the submitted form as a pending registration.
// Neither the tier nor the payload are validated here; checkout does that.
func SaveRegistration(ctx context.Context, repo Repository, tier Tier, data json.RawMessage) (Registration, error) {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	reg := Registration{
		ID:        uuid.NewString(),
		Version:   1,
		Type:      tier,
		Data:      data,
		Status:    PENDING,
		CreatedAt: time.Now().UTC(),
	}

	err := repo.CreateRegistration(ctx, reg)
	if err != nil {
		return Registration{}, err
	}

	return reg, nil
}
