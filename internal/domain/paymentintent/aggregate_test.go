package paymentintent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/money"
)

// fakeTender satisfies Tender without pulling in a full payment method.
type fakeTender struct {
	id    string
	valid bool
	uses  int
}

func (f *fakeTender) GetID() string { return f.id }
func (f *fakeTender) IsValid() bool { return f.valid }
func (f *fakeTender) Use() error {
	if !f.valid {
		return errors.New("tender is not usable")
	}
	f.uses++
	return nil
}

func usd(amount int64) money.Money { return money.New(amount, "USD") }

func authorized(t *testing.T, tender Tender) *PaymentIntent {
	t.Helper()
	pi, err := Authorize(AuthorizeCommand{ID: "pi-1", Money: usd(10000), Tender: tender})
	require.NoError(t, err)
	return pi
}

// ============================================
// Authorize Tests
// ============================================

func TestAuthorize_WithTender(t *testing.T) {
	tender := &fakeTender{id: "pm-1", valid: true}

	pi := authorized(t, tender)

	assert.Equal(t, StatusRequiresCapture, pi.Status)
	assert.Equal(t, "pm-1", pi.TenderID)
	assert.Equal(t, usd(10000), pi.Money)
	assert.True(t, pi.AuthCaptureDiff.IsZero())
	assert.Equal(t, 1, tender.uses)
	assert.Equal(t, 1, pi.Version)
}

func TestAuthorize_WithoutTender(t *testing.T) {
	pi := authorized(t, nil)

	assert.Equal(t, StatusRequiresPaymentMethod, pi.Status)
	assert.Empty(t, pi.TenderID)
}

func TestAuthorize_ZeroOrNegativeAmount(t *testing.T) {
	for _, amount := range []int64{0, -100} {
		pi, err := Authorize(AuthorizeCommand{ID: "pi-1", Money: usd(amount)})

		assert.ErrorIs(t, err, money.ErrInvalidAmount)
		assert.Nil(t, pi)
	}
}

func TestAuthorize_UnusableTenderLeavesNoTrace(t *testing.T) {
	tender := &fakeTender{id: "pm-1", valid: false}

	pi, err := Authorize(AuthorizeCommand{ID: "pi-1", Money: usd(10000), Tender: tender})

	assert.Error(t, err)
	assert.Nil(t, pi)
}

// ============================================
// Capture Tests
// ============================================

func TestCapture_FullAmount(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

	require.NoError(t, pi.Capture(nil, nil))

	assert.Equal(t, StatusSucceeded, pi.Status)
	assert.Equal(t, usd(10000), pi.Money)
	assert.True(t, pi.AuthCaptureDiff.IsZero())
}

func TestCapture_PartialAmount(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

	amount := usd(5000)
	require.NoError(t, pi.Capture(&amount, nil))

	assert.Equal(t, StatusSucceeded, pi.Status)
	assert.Equal(t, usd(5000), pi.Money)
	assert.Equal(t, usd(5000), pi.AuthCaptureDiff)
}

func TestCapture_SuppliesMissingTender(t *testing.T) {
	pi := authorized(t, nil)
	tender := &fakeTender{id: "pm-1", valid: true}

	require.NoError(t, pi.Capture(nil, tender))

	assert.Equal(t, StatusSucceeded, pi.Status)
	assert.Equal(t, "pm-1", pi.TenderID)
	assert.Equal(t, 1, tender.uses)
}

func TestCapture_MissingTenderRejected(t *testing.T) {
	pi := authorized(t, nil)

	err := pi.Capture(nil, nil)

	assert.ErrorIs(t, err, ErrPaymentMethodRequired)
	assert.ErrorIs(t, err, ErrCaptureUnavailable)
	assert.Equal(t, StatusRequiresPaymentMethod, pi.Status)
}

func TestCapture_TenderIgnoredWhenAlreadyBound(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})
	other := &fakeTender{id: "pm-2", valid: true}

	require.NoError(t, pi.Capture(nil, other))

	assert.Equal(t, "pm-1", pi.TenderID)
	assert.Zero(t, other.uses)
}

func TestCapture_AmountBounds(t *testing.T) {
	tests := []struct {
		name    string
		amount  money.Money
		wantErr error
	}{
		{"zero", usd(0), money.ErrInvalidAmount},
		{"negative", usd(-1), money.ErrInvalidAmount},
		{"exceeds authorized", usd(10001), money.ErrInvalidAmount},
		{"currency mismatch", money.New(5000, "EUR"), money.ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

			err := pi.Capture(&tt.amount, nil)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, StatusRequiresCapture, pi.Status)
			assert.Len(t, pi.RecordedEvents(), 1)
		})
	}
}

func TestCapture_OnlyOnce(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})
	require.NoError(t, pi.Capture(nil, nil))

	err := pi.Capture(nil, nil)

	assert.ErrorIs(t, err, ErrCaptureUnavailable)
	assert.Contains(t, err.Error(), string(StatusSucceeded))
}

// ============================================
// Cancel and Decline Tests
// ============================================

func TestCancel_Capturable(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

	require.NoError(t, pi.Cancel())

	assert.Equal(t, StatusCanceled, pi.Status)
}

func TestCancel_NoTenderYet(t *testing.T) {
	pi := authorized(t, nil)

	require.NoError(t, pi.Cancel())

	assert.Equal(t, StatusCanceled, pi.Status)
}

func TestDecline_RecordsReason(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

	require.NoError(t, pi.Decline("insufficient funds"))

	assert.Equal(t, StatusDeclined, pi.Status)
	assert.Equal(t, "insufficient funds", pi.DeclineReason)
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	terminal := map[string]func(*testing.T) *PaymentIntent{
		"succeeded": func(t *testing.T) *PaymentIntent {
			pi := authorized(t, &fakeTender{id: "pm-1", valid: true})
			require.NoError(t, pi.Capture(nil, nil))
			return pi
		},
		"canceled": func(t *testing.T) *PaymentIntent {
			pi := authorized(t, &fakeTender{id: "pm-1", valid: true})
			require.NoError(t, pi.Cancel())
			return pi
		},
		"declined": func(t *testing.T) *PaymentIntent {
			pi := authorized(t, &fakeTender{id: "pm-1", valid: true})
			require.NoError(t, pi.Decline("no"))
			return pi
		},
	}

	for name, build := range terminal {
		t.Run(name, func(t *testing.T) {
			pi := build(t)

			assert.False(t, pi.Capturable())
			assert.ErrorIs(t, pi.Capture(nil, nil), ErrCaptureUnavailable)
			assert.ErrorIs(t, pi.Cancel(), ErrCancelUnavailable)
			assert.ErrorIs(t, pi.Decline("again"), ErrDeclineUnavailable)
		})
	}
}

// ============================================
// Gateway Tests
// ============================================

func TestAddGatewayIntent_StoresResource(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

	err := pi.AddGatewayIntent(func(*PaymentIntent) (gateway.PaymentIntentResource, error) {
		return gateway.PaymentIntentResource{
			Resource: gateway.Resource{ID: "gwpi-1", GatewayID: "gw-1", Valid: true},
			Money:    usd(10000),
		}, nil
	})

	require.NoError(t, err)
	require.NotNil(t, pi.Gateway.PaymentIntent)
	assert.Equal(t, "gwpi-1", pi.Gateway.PaymentIntent.ID)
	assert.Equal(t, 2, pi.Version)
}

func TestAddGatewayIntent_InvalidResourceRejected(t *testing.T) {
	pi := authorized(t, &fakeTender{id: "pm-1", valid: true})

	err := pi.AddGatewayIntent(func(*PaymentIntent) (gateway.PaymentIntentResource, error) {
		return gateway.PaymentIntentResource{
			Resource: gateway.Resource{ID: "gwpi-1", GatewayID: "gw-1", Valid: false},
		}, nil
	})

	assert.ErrorIs(t, err, gateway.ErrInvalidResource)
	assert.Nil(t, pi.Gateway.PaymentIntent)
}
