package services

import (
	"context"
	"fmt"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/payments"
)

// PaymentServiceProvider defines the interface for payment services.
type PaymentServiceProvider interface {
	CreatePaymentSheet(ctx context.Context, amount int64) (models.PaymentSheet, error)
}

// PaymentService prepares payment sheets in a fixed currency.
type PaymentService struct {
	provider       payments.Provider
	currency       string
	publishableKey string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(provider payments.Provider, currency, publishableKey string) *PaymentService {
	return &PaymentService{provider: provider, currency: currency, publishableKey: publishableKey}
}

// CreatePaymentSheet creates a customer, an ephemeral key and an intent for
// amount whole currency units.
func (s *PaymentService) CreatePaymentSheet(ctx context.Context, amount int64) (models.PaymentSheet, error) {
	if amount < 0 {
		return models.PaymentSheet{}, fmt.Errorf("%w: amount must not be negative", common.ErrInvalidInput)
	}
	if amount > payments.MaxAmountMinor/100 {
		return models.PaymentSheet{}, fmt.Errorf("%w: amount exceeds %d", common.ErrInvalidInput, payments.MaxAmountMinor/100)
	}

	customer, err := s.provider.CreateCustomer(ctx)
	if err != nil {
		return models.PaymentSheet{}, err
	}
	key, err := s.provider.CreateEphemeralKey(ctx, customer)
	if err != nil {
		return models.PaymentSheet{}, err
	}
	secret, err := s.provider.CreatePaymentIntent(ctx, customer, amount*100, s.currency)
	if err != nil {
		return models.PaymentSheet{}, err
	}

	return models.PaymentSheet{
		PaymentIntent:  secret,
		EphemeralKey:   key,
		Customer:       customer,
		PublishableKey: s.publishableKey,
	}, nil
}
