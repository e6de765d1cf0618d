package checkout

import (
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v85"
)

func TestToStripeCreateParams(t *testing.T) {
	t.Run("inline price data", func(t *testing.T) {
		params := toStripeCreateParams(registration.CheckoutParams{
			LineItems: []registration.LineItem{
				{
					ProductName: "Puzzles Marathon – participant",
					Price:       money.New(2500, money.USD),
					Quantity:    1,
				},
			},
			SuccessURL: "https://puzzlesmarathon.com/payment-success-participant.html?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:  "https://puzzlesmarathon.com",
			Metadata: map[string]string{
				registration.METADATA_REGISTRATION_ID: "reg-1",
				registration.METADATA_TYPE:            "participant",
			},
		})

		assert.Equal(t, "payment", *params.Mode)
		require.Len(t, params.PaymentMethodTypes, 1)
		assert.Equal(t, "card", *params.PaymentMethodTypes[0])
		assert.Equal(t, "https://puzzlesmarathon.com", *params.CancelURL)
		assert.Equal(t, "reg-1", params.Metadata[registration.METADATA_REGISTRATION_ID])

		require.Len(t, params.LineItems, 1)
		item := params.LineItems[0]
		assert.Nil(t, item.Price)
		assert.Equal(t, int64(1), *item.Quantity)
		require.NotNil(t, item.PriceData)
		assert.Equal(t, "usd", *item.PriceData.Currency)
		assert.Equal(t, int64(2500), *item.PriceData.UnitAmount)
		assert.Equal(t, "Puzzles Marathon – participant", *item.PriceData.ProductData.Name)
	})

	t.Run("price reference", func(t *testing.T) {
		params := toStripeCreateParams(registration.CheckoutParams{
			LineItems: []registration.LineItem{
				{ProductName: "ignored", PriceRef: "price_123", Quantity: 1},
			},
		})

		item := params.LineItems[0]
		assert.Equal(t, "price_123", *item.Price)
		assert.Nil(t, item.PriceData)
	})
}

func TestFromStripeSession(t *testing.T) {
	session := fromStripeSession(&stripe.CheckoutSession{
		ID:            "cs_test_1",
		URL:           "https://checkout.stripe.com/c/pay/cs_test_1",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Metadata:      map[string]string{registration.METADATA_REGISTRATION_ID: "reg-1"},
	})

	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, registration.PAYMENT_STATUS_PAID, session.PaymentStatus)
	assert.Equal(t, "reg-1", session.Metadata[registration.METADATA_REGISTRATION_ID])

	unpaid := fromStripeSession(&stripe.CheckoutSession{PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid})
	assert.Equal(t, registration.PAYMENT_STATUS_UNPAID, unpaid.PaymentStatus)
}
