package registration

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
)

const (
	METADATA_REGISTRATION_ID = "registrationId"
	METADATA_TYPE            = "type"

	// Placeholder the processor substitutes with the session id on redirect.
	sessionIdPlaceholder = "{CHECKOUT_SESSION_ID}"

	donationSuccessPage = "payment-success-donation.html"
)

type PaymentStatus string

const (
	PAYMENT_STATUS_PAID                PaymentStatus = "paid"
	PAYMENT_STATUS_UNPAID              PaymentStatus = "unpaid"
	PAYMENT_STATUS_NO_PAYMENT_REQUIRED PaymentStatus = "no_payment_required"
)

type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionId string) (CheckoutSession, error)
}

// LineItem carries either a fixed Price or a processor PriceRef.
type LineItem struct {
	ProductName string
	Price       *money.Money
	PriceRef    string
	Quantity    int64
}

type CheckoutParams struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus PaymentStatus
	Metadata      map[string]string
}

// CheckoutSettings holds the site and pricing details shared by every checkout.
// SiteURL is the base for the success and cancel redirects.
type CheckoutSettings struct {
	SiteURL   string
	EventName string
	Currency  string
	Tiers     TierTable
}

func (s CheckoutSettings) successURL(page string) string {
	return fmt.Sprintf("%s/%s?session_id=%s", strings.TrimRight(s.SiteURL, "/"), page, sessionIdPlaceholder)
}

func (s CheckoutSettings) cancelURL() string {
	return strings.TrimRight(s.SiteURL, "/")
}

func CreateTierCheckout(ctx context.Context, processor PaymentProcessor, settings CheckoutSettings, tier Tier, registrationId string) (CheckoutSession, error) {
	price, ok := settings.Tiers.Lookup(tier)
	if !ok {
		return CheckoutSession{}, NewInvalidCheckoutTypeError(tier)
	}

	item := LineItem{
		ProductName: fmt.Sprintf("%s – %s", settings.EventName, tier),
		Quantity:    1,
	}
	if price.PriceRef != "" {
		item.PriceRef = price.PriceRef
	} else {
		item.Price = price.Amount
	}

	session, err := processor.CreateCheckoutSession(ctx, CheckoutParams{
		LineItems:  []LineItem{item},
		SuccessURL: settings.successURL(price.SuccessPage),
		CancelURL:  settings.cancelURL(),
		Metadata: map[string]string{
			METADATA_REGISTRATION_ID: registrationId,
			METADATA_TYPE:            string(tier),
		},
	})
	if err != nil {
		return CheckoutSession{}, NewPaymentProcessorFailureError(fmt.Sprintf("Failed to create checkout session for tier %q", tier), err)
	}

	return session, nil
}

// DonationAmount converts a major-unit amount into minor units. Sign is passed
// through unchanged; amounts that do not fit in int64 minor units are rejected.
func DonationAmount(amount float64, currency string) (*money.Money, error) {
	minor := math.Round(amount * 100)
	if math.IsNaN(minor) || minor >= math.MaxInt64 || minor < math.MinInt64 {
		return nil, NewInvalidDonationAmountError(amount)
	}
	return money.New(int64(minor), currency), nil
}

func CreateDonationCheckout(ctx context.Context, processor PaymentProcessor, settings CheckoutSettings, amount float64, registrationId string) (CheckoutSession, error) {
	price, err := DonationAmount(amount, settings.Currency)
	if err != nil {
		return CheckoutSession{}, err
	}

	session, err := processor.CreateCheckoutSession(ctx, CheckoutParams{
		LineItems: []LineItem{
			{
				ProductName: fmt.Sprintf("%s Donation", settings.EventName),
				Price:       price,
				Quantity:    1,
			},
		},
		SuccessURL: settings.successURL(donationSuccessPage),
		CancelURL:  settings.cancelURL(),
		Metadata: map[string]string{
			METADATA_REGISTRATION_ID: registrationId,
			METADATA_TYPE:            string(DONATION),
		},
	})
	if err != nil {
		return CheckoutSession{}, NewPaymentProcessorFailureError("Failed to create donation checkout session", err)
	}

	return session, nil
}
