package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type recordedRequest struct {
	path           string
	form           map[string]string
	stripeVersion  string
	idempotencyKey string
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *StripeProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeProvider("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
}

func TestStripeProvider_PaymentSheetFlow(t *testing.T) {
	var mu sync.Mutex
	var reqs []recordedRequest

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		rec := recordedRequest{
			path:           r.URL.Path,
			form:           map[string]string{},
			stripeVersion:  r.Header.Get("Stripe-Version"),
			idempotencyKey: r.Header.Get("Idempotency-Key"),
		}
		for k := range r.PostForm {
			rec.form[k] = r.PostForm.Get(k)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/customers":
			w.Write([]byte(`{"id":"cus_123","object":"customer"}`))
		case "/v1/ephemeral_keys":
			w.Write([]byte(`{"id":"ephkey_1","object":"ephemeral_key","secret":"ek_secret"}`))
		case "/v1/payment_intents":
			w.Write([]byte(`{"id":"pi_1","object":"payment_intent","client_secret":"pi_secret"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	customer, err := p.CreateCustomer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cus_123", customer)

	key, err := p.CreateEphemeralKey(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, "ek_secret", key)

	secret, err := p.CreatePaymentIntent(ctx, customer, 500, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_secret", secret)

	require.Len(t, reqs, 3)
	assert.Equal(t, EphemeralKeyVersion, reqs[1].stripeVersion)
	assert.Equal(t, "cus_123", reqs[1].form["customer"])

	intent := reqs[2].form
	assert.Equal(t, "500", intent["amount"])
	assert.Equal(t, "usd", intent["currency"])
	assert.Equal(t, "cus_123", intent["customer"])
	assert.Equal(t, "true", intent["automatic_payment_methods[enabled]"])

	for _, r := range reqs {
		assert.NotEmpty(t, r.idempotencyKey, r.path)
	}
	assert.NotEqual(t, reqs[0].idempotencyKey, reqs[2].idempotencyKey)
}

func TestStripeProvider_ErrorWrapsUpstream(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	})

	_, err := p.CreateCustomer(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpstream)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
}
