package dynamo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/puzzlesmarathon/registration-backend/ptr"
	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRegistration() registration.Registration {
	return registration.Registration{
		ID:        uuid.NewString(),
		Version:   1,
		Type:      registration.PARTICIPANT,
		Data:      json.RawMessage(`{"name":"Alice","team":"Knots"}`),
		Status:    registration.PENDING,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully create and read back a registration", func(t *testing.T) {
		resetTable(ctx)

		reg := newPendingRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)
		if diff := cmp.Diff(reg, got); diff != "" {
			t.Errorf("registration mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fail to create a registration that already exists", func(t *testing.T) {
		resetTable(ctx)

		reg := newPendingRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		err := db.CreateRegistration(ctx, reg)
		require.Error(t, err)
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_REGISTRATION_ALREADY_EXISTS, regError.Reason)
	})
}

func TestGetRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("registration does not exist", func(t *testing.T) {
		resetTable(ctx)

		_, err := db.GetRegistration(ctx, uuid.NewString())
		require.Error(t, err)
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_REGISTRATION_DOES_NOT_EXIST, regError.Reason)
	})
}

func TestUpdateRegistrationToPaid(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a pending registration paid", func(t *testing.T) {
		resetTable(ctx)

		reg := newPendingRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		reg.Status = registration.PAID
		reg.SessionReference = ptr.String("cs_test_123")
		reg.Version++
		require.NoError(t, db.UpdateRegistrationToPaid(ctx, reg))

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, registration.PAID, got.Status)
		require.NotNil(t, got.SessionReference)
		assert.Equal(t, "cs_test_123", *got.SessionReference)
		assert.Equal(t, 2, got.Version)
		assert.JSONEq(t, string(reg.Data), string(got.Data))
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		resetTable(ctx)

		reg := newPendingRegistration()
		require.NoError(t, db.CreateRegistration(ctx, reg))

		first := reg
		first.Status = registration.PAID
		first.SessionReference = ptr.String("cs_a")
		first.Version++
		require.NoError(t, db.UpdateRegistrationToPaid(ctx, first))

		second := reg
		second.Status = registration.PAID
		second.SessionReference = ptr.String("cs_b")
		second.Version++
		err := db.UpdateRegistrationToPaid(ctx, second)
		require.Error(t, err)
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_VERSION_CONFLICT, regError.Reason)

		got, err := db.GetRegistration(ctx, reg.ID)
		require.NoError(t, err)
		assert.Equal(t, "cs_a", *got.SessionReference)
	})

	t.Run("missing registration is a conflict", func(t *testing.T) {
		resetTable(ctx)

		reg := newPendingRegistration()
		reg.Version = 2
		reg.SessionReference = ptr.String("cs_x")
		err := db.UpdateRegistrationToPaid(ctx, reg)
		var regError *registration.Error
		require.ErrorAs(t, err, &regError)
		assert.Equal(t, registration.REASON_VERSION_CONFLICT, regError.Reason)
	})
}
