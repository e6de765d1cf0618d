package checkout

import (
	"context"
	"strings"

	"github.com/puzzlesmarathon/registration-backend/registration"
	"github.com/stripe/stripe-go/v85"
)

var _ registration.PaymentProcessor = &StripeProcessor{}

type StripeProcessor struct {
	client *stripe.Client
}

func NewStripeProcessor(secretKey string, opts ...stripe.ClientOption) *StripeProcessor {
	return &StripeProcessor{
		client: stripe.NewClient(secretKey, opts...),
	}
}

func (s *StripeProcessor) CreateCheckoutSession(ctx context.Context, params registration.CheckoutParams) (registration.CheckoutSession, error) {
	session, err := s.client.V1CheckoutSessions.Create(ctx, toStripeCreateParams(params))
	if err != nil {
		return registration.CheckoutSession{}, err
	}

	return fromStripeSession(session), nil
}

func (s *StripeProcessor) RetrieveSession(ctx context.Context, sessionId string) (registration.CheckoutSession, error) {
	session, err := s.client.V1CheckoutSessions.Retrieve(ctx, sessionId, nil)
	if err != nil {
		return registration.CheckoutSession{}, err
	}

	return fromStripeSession(session), nil
}

func toStripeCreateParams(params registration.CheckoutParams) *stripe.CheckoutSessionCreateParams {
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(params.LineItems))
	for _, item := range params.LineItems {
		lineItems = append(lineItems, toStripeLineItem(item))
	}

	return &stripe.CheckoutSessionCreateParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
		Metadata:           params.Metadata,
	}
}

func toStripeLineItem(item registration.LineItem) *stripe.CheckoutSessionCreateLineItemParams {
	if item.PriceRef != "" {
		return &stripe.CheckoutSessionCreateLineItemParams{
			Price:    stripe.String(item.PriceRef),
			Quantity: stripe.Int64(item.Quantity),
		}
	}

	return &stripe.CheckoutSessionCreateLineItemParams{
		PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
			Currency: stripe.String(strings.ToLower(item.Price.Currency().Code)),
			ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
				Name: stripe.String(item.ProductName),
			},
			UnitAmount: stripe.Int64(item.Price.Amount()),
		},
		Quantity: stripe.Int64(item.Quantity),
	}
}

func fromStripeSession(session *stripe.CheckoutSession) registration.CheckoutSession {
	return registration.CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: registration.PaymentStatus(session.PaymentStatus),
		Metadata:      session.Metadata,
	}
}
