// Package payments creates the server-side objects a mobile payment sheet
// needs: a customer, an ephemeral key for that customer and a payment intent.
package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const (
	// EphemeralKeyVersion is the API version the client SDK is pinned to.
	EphemeralKeyVersion = "2024-04-10"

	// MaxAmountMinor is the largest single charge Stripe accepts, in minor
	// units ($999,999.99).
	MaxAmountMinor int64 = 99_999_999
)

// Provider is the payment processor contract used by the payment service.
type Provider interface {
	CreateCustomer(ctx context.Context) (string, error)
	CreateEphemeralKey(ctx context.Context, customerID string) (string, error)
	// CreatePaymentIntent returns the intent's client secret.
	CreatePaymentIntent(ctx context.Context, customerID string, amountMinor int64, currency string) (string, error)
}

// StripeProvider implements Provider on the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider creates a provider for secretKey. A nil backends uses
// the default Stripe endpoints.
func NewStripeProvider(secretKey string, backends *stripe.Backends) *StripeProvider {
	return &StripeProvider{api: client.New(secretKey, backends)}
}

// CreateCustomer creates an anonymous customer and returns its id.
func (p *StripeProvider) CreateCustomer(ctx context.Context) (string, error) {
	params := &stripe.CustomerParams{}
	prepare(ctx, &params.Params)

	c, err := p.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create customer: %v", common.ErrUpstream, err)
	}
	return c.ID, nil
}

// CreateEphemeralKey returns the secret of a new ephemeral key for customerID.
func (p *StripeProvider) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(EphemeralKeyVersion),
	}
	prepare(ctx, &params.Params)

	k, err := p.api.EphemeralKeys.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create ephemeral key: %v", common.ErrUpstream, err)
	}
	return k.Secret, nil
}

// CreatePaymentIntent creates an intent with automatic payment methods.
func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, customerID string, amountMinor int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	prepare(ctx, &params.Params)

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create payment intent: %v", common.ErrUpstream, err)
	}
	return pi.ClientSecret, nil
}

func prepare(ctx context.Context, params *stripe.Params) {
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
}
