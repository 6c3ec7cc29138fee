package refund

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/paymentintent"
)

func usd(amount int64) money.Money { return money.New(amount, "USD") }

type stubTender struct{ id string }

func (s stubTender) GetID() string { return s.id }
func (s stubTender) IsValid() bool { return true }
func (s stubTender) Use() error { return nil }

func capturedIntent(t *testing.T, amount int64) *paymentintent.PaymentIntent {
	t.Helper()
	pi, err := paymentintent.Authorize(paymentintent.AuthorizeCommand{
		ID:     "pi-1",
		Money:  usd(amount),
		Tender: stubTender{id: "pm-1"},
	})
	require.NoError(t, err)
	require.NoError(t, pi.Capture(nil, nil))
	return pi
}

func openRefund(t *testing.T) *Refund {
	t.Helper()
	r, err := Create(CreateCommand{ID: "rf-1", Money: usd(5000), Intent: capturedIntent(t, 10000)})
	require.NoError(t, err)
	return r
}

// ============================================
// Create Tests
// ============================================

func TestCreate_PartialRefund(t *testing.T) {
	r, err := Create(CreateCommand{ID: "rf-1", Money: usd(5000), Intent: capturedIntent(t, 10000)})

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, r.Status)
	assert.Equal(t, usd(5000), r.Money)
	assert.Equal(t, "pi-1", r.PaymentIntentID)
	assert.Equal(t, 1, r.Version)
}

func TestCreate_FullRefund(t *testing.T) {
	r, err := Create(CreateCommand{ID: "rf-1", Money: usd(10000), Intent: capturedIntent(t, 10000)})

	require.NoError(t, err)
	assert.Equal(t, StatusCreated, r.Status)
}

func TestCreate_ExceedsCaptured(t *testing.T) {
	r, err := Create(CreateCommand{ID: "rf-1", Money: usd(10001), Intent: capturedIntent(t, 10000)})

	assert.ErrorIs(t, err, money.ErrInvalidAmount)
	assert.Nil(t, r)
}

func TestCreate_ZeroOrNegativeAmount(t *testing.T) {
	for _, amount := range []int64{0, -500} {
		r, err := Create(CreateCommand{ID: "rf-1", Money: usd(amount), Intent: capturedIntent(t, 10000)})

		assert.ErrorIs(t, err, money.ErrInvalidAmount)
		assert.Nil(t, r)
	}
}

func TestCreate_CurrencyMismatch(t *testing.T) {
	r, err := Create(CreateCommand{ID: "rf-1", Money: money.New(5000, "EUR"), Intent: capturedIntent(t, 10000)})

	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	assert.Nil(t, r)
}

func TestCreate_IntentNotCaptured(t *testing.T) {
	pi, err := paymentintent.Authorize(paymentintent.AuthorizeCommand{
		ID:     "pi-1",
		Money:  usd(10000),
		Tender: stubTender{id: "pm-1"},
	})
	require.NoError(t, err)

	r, err := Create(CreateCommand{ID: "rf-1", Money: usd(5000), Intent: pi})

	assert.ErrorIs(t, err, ErrUnsupportedIntentStatus)
	assert.Nil(t, r)
}

// ============================================
// Gateway Settlement Tests
// ============================================

func TestAddGatewayRefund_Settles(t *testing.T) {
	r := openRefund(t)

	err := r.AddGatewayRefund(func(*Refund) (gateway.RefundResource, error) {
		return gateway.RefundResource{
			Resource: gateway.Resource{ID: "gwrf-1", GatewayID: "gw-1", Valid: true},
			Money:    usd(5000),
		}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, r.Status)
	require.NotNil(t, r.Gateway.Refund)
	assert.Equal(t, "gwrf-1", r.Gateway.Refund.ID)
}

func TestAddGatewayRefund_InvalidResourceRejected(t *testing.T) {
	r := openRefund(t)

	err := r.AddGatewayRefund(func(*Refund) (gateway.RefundResource, error) {
		return gateway.RefundResource{
			Resource: gateway.Resource{ID: "gwrf-1", GatewayID: "gw-1", Valid: false},
		}, nil
	})

	assert.ErrorIs(t, err, gateway.ErrInvalidResource)
	assert.Equal(t, StatusCreated, r.Status)
}

func TestCancelGatewayRefund(t *testing.T) {
	r := openRefund(t)
	require.NoError(t, r.AddGatewayRefund(func(*Refund) (gateway.RefundResource, error) {
		return gateway.RefundResource{
			Resource: gateway.Resource{ID: "gwrf-1", GatewayID: "gw-1", Valid: true},
		}, nil
	}))

	err := r.CancelGatewayRefund(func(old *gateway.RefundResource, _ *Refund) (gateway.RefundResource, error) {
		canceled := *old
		canceled.Valid = false
		return canceled, nil
	})

	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, r.Status)
}

// ============================================
// Decline and Cancel Tests
// ============================================

func TestDecline_OpenRefund(t *testing.T) {
	r := openRefund(t)

	require.NoError(t, r.Decline("chargeback in progress"))

	assert.Equal(t, StatusDeclined, r.Status)
	assert.Equal(t, "chargeback in progress", r.DeclineReason)
}

func TestCancel_OpenRefund(t *testing.T) {
	r := openRefund(t)

	require.NoError(t, r.Cancel())

	assert.Equal(t, StatusCanceled, r.Status)
}

func TestDecline_SettledRefundRejected(t *testing.T) {
	r := openRefund(t)
	require.NoError(t, r.AddGatewayRefund(func(*Refund) (gateway.RefundResource, error) {
		return gateway.RefundResource{
			Resource: gateway.Resource{ID: "gwrf-1", GatewayID: "gw-1", Valid: true},
		}, nil
	}))

	assert.ErrorIs(t, r.Decline("too late"), ErrNotOpen)
	assert.ErrorIs(t, r.Cancel(), ErrNotOpen)
}
