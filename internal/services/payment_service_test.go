package services

import (
	"context"
	"math"
	"testing"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	calls       int
	customerErr error
	amount      int64
	currency    string
	keyFor      string
}

func (f *fakeProvider) CreateCustomer(ctx context.Context) (string, error) {
	f.calls++
	return "cus_1", f.customerErr
}

func (f *fakeProvider) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	f.keyFor = customerID
	return "ek_secret", nil
}

func (f *fakeProvider) CreatePaymentIntent(ctx context.Context, customerID string, amountMinor int64, currency string) (string, error) {
	f.amount = amountMinor
	f.currency = currency
	return "pi_secret", nil
}

func TestPaymentService_CreatePaymentSheet(t *testing.T) {
	p := &fakeProvider{}
	svc := NewPaymentService(p, "usd", "pk_test")

	sheet, err := svc.CreatePaymentSheet(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSheet{
		PaymentIntent:  "pi_secret",
		EphemeralKey:   "ek_secret",
		Customer:       "cus_1",
		PublishableKey: "pk_test",
	}, sheet)
	assert.Equal(t, int64(500), p.amount)
	assert.Equal(t, "usd", p.currency)
	assert.Equal(t, "cus_1", p.keyFor)
}

func TestPaymentService_ZeroAmountAllowed(t *testing.T) {
	p := &fakeProvider{}
	_, err := NewPaymentService(p, "usd", "").CreatePaymentSheet(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, p.amount)
}

func TestPaymentService_Errors(t *testing.T) {
	_, err := NewPaymentService(&fakeProvider{}, "usd", "").CreatePaymentSheet(context.Background(), -1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	p := &fakeProvider{customerErr: common.ErrUpstream}
	_, err = NewPaymentService(p, "usd", "").CreatePaymentSheet(context.Background(), 5)
	assert.ErrorIs(t, err, common.ErrUpstream)
}

func TestPaymentService_AmountLimit(t *testing.T) {
	p := &fakeProvider{}
	svc := NewPaymentService(p, "usd", "")

	for _, amount := range []int64{payments.MaxAmountMinor/100 + 1, 92233720368547759, math.MaxInt64} {
		_, err := svc.CreatePaymentSheet(context.Background(), amount)
		assert.ErrorIs(t, err, common.ErrInvalidInput, amount)
	}
	assert.Zero(t, p.calls)

	_, err := svc.CreatePaymentSheet(context.Background(), payments.MaxAmountMinor/100)
	require.NoError(t, err)
	assert.Equal(t, int64(99_999_900), p.amount)
}
