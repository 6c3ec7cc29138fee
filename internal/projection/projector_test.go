package projection

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/domain/paymentmethod"
	"github.com/example/payment-es/internal/domain/refund"
	"github.com/example/payment-es/internal/domain/source"
	"github.com/example/payment-es/internal/domain/subscription"
	"github.com/example/payment-es/internal/infrastructure/store"
	"github.com/example/payment-es/internal/readmodel"
)

func usd(amount int64) money.Money { return money.New(amount, "USD") }

func feed(t *testing.T, p *Projector, aggregateID, aggregateType, eventType string, data any, version int) {
	t.Helper()
	payload, err := json.Marshal(data)
	require.NoError(t, err)
	event := store.Event{
		ID:            "ev-1",
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          payload,
		Timestamp:     time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC),
		Version:       version,
	}
	value, err := json.Marshal(event)
	require.NoError(t, err)
	require.NoError(t, p.HandleEvent(context.Background(), []byte(aggregateID), value))
}

// ============================================
// Payment Intent Projection Tests
// ============================================

func TestProjector_PaymentIntentLifecycle(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)

	feed(t, p, "pi-1", paymentintent.AggregateType, paymentintent.EventPaymentIntentAuthorized,
		paymentintent.PaymentIntentAuthorized{Money: usd(10000), Description: "order 42", TenderID: "pm-1"}, 1)

	raw, ok := rs.Get("payment_intents", "pi-1")
	require.True(t, ok)
	m := raw.(*readmodel.PaymentIntentReadModel)
	assert.Equal(t, string(paymentintent.StatusRequiresCapture), m.Status)
	assert.Equal(t, int64(10000), m.Amount)
	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, "pm-1", m.TenderID)

	captured := usd(4000)
	feed(t, p, "pi-1", paymentintent.AggregateType, paymentintent.EventPaymentIntentCaptured,
		paymentintent.PaymentIntentCaptured{Money: &captured}, 2)

	raw, _ = rs.Get("payment_intents", "pi-1")
	m = raw.(*readmodel.PaymentIntentReadModel)
	assert.Equal(t, string(paymentintent.StatusSucceeded), m.Status)
	assert.Equal(t, int64(4000), m.Amount)
}

func TestProjector_PaymentIntentWithoutTender(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)

	feed(t, p, "pi-1", paymentintent.AggregateType, paymentintent.EventPaymentIntentAuthorized,
		paymentintent.PaymentIntentAuthorized{Money: usd(10000)}, 1)

	raw, ok := rs.Get("payment_intents", "pi-1")
	require.True(t, ok)
	assert.Equal(t, string(paymentintent.StatusRequiresPaymentMethod),
		raw.(*readmodel.PaymentIntentReadModel).Status)

	// A late tender arrives with the capture
	feed(t, p, "pi-1", paymentintent.AggregateType, paymentintent.EventPaymentIntentCaptured,
		paymentintent.PaymentIntentCaptured{TenderID: "pm-late"}, 2)

	raw, _ = rs.Get("payment_intents", "pi-1")
	m := raw.(*readmodel.PaymentIntentReadModel)
	assert.Equal(t, "pm-late", m.TenderID)
	assert.Equal(t, int64(10000), m.Amount)
}

func TestProjector_PaymentIntentDeclined(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)
	feed(t, p, "pi-1", paymentintent.AggregateType, paymentintent.EventPaymentIntentAuthorized,
		paymentintent.PaymentIntentAuthorized{Money: usd(10000), TenderID: "pm-1"}, 1)

	feed(t, p, "pi-1", paymentintent.AggregateType, paymentintent.EventPaymentIntentDeclined,
		paymentintent.PaymentIntentDeclined{Reason: "insufficient funds"}, 2)

	raw, _ := rs.Get("payment_intents", "pi-1")
	m := raw.(*readmodel.PaymentIntentReadModel)
	assert.Equal(t, string(paymentintent.StatusDeclined), m.Status)
	assert.Equal(t, "insufficient funds", m.DeclineReason)
}

// ============================================
// Payment Method Projection Tests
// ============================================

func feedMethodCreated(t *testing.T, p *Projector, id string) {
	t.Helper()
	feed(t, p, id, paymentmethod.AggregateType, paymentmethod.EventPaymentMethodCreated,
		paymentmethod.PaymentMethodCreated{
			BillingAddress: billingaddress.Address{Email: "jo@example.com"},
			Source:         source.Cash(),
		}, 1)
}

func gatewayMethodAdded() gateway.PaymentMethodAdded {
	return gateway.PaymentMethodAdded{PaymentMethod: gateway.PaymentMethodResource{
		Resource: gateway.Resource{ID: "gwpm-1", GatewayID: "gw-1", Valid: true},
		Source:   source.Cash(),
	}}
}

func TestProjector_GatewayAddPromotesPendingMethod(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)
	feedMethodCreated(t, p, "pm-1")

	feed(t, p, "pm-1", paymentmethod.AggregateType, gateway.EventPaymentMethodAdded,
		gatewayMethodAdded(), 2)

	raw, ok := rs.Get("payment_methods", "pm-1")
	require.True(t, ok)
	assert.Equal(t, string(paymentmethod.StatusSucceeded), raw.(*readmodel.PaymentMethodReadModel).Status)
}

func TestProjector_GatewayAddLeavesFailedMethodFailed(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)
	feedMethodCreated(t, p, "pm-1")
	feed(t, p, "pm-1", paymentmethod.AggregateType, paymentmethod.EventPaymentMethodFailed,
		paymentmethod.PaymentMethodFailed{}, 2)

	feed(t, p, "pm-1", paymentmethod.AggregateType, gateway.EventPaymentMethodAdded,
		gatewayMethodAdded(), 3)

	raw, _ := rs.Get("payment_methods", "pm-1")
	assert.Equal(t, string(paymentmethod.StatusFailed), raw.(*readmodel.PaymentMethodReadModel).Status)
}

// ============================================
// Subscription Projection Tests
// ============================================

func TestProjector_SubscriptionPayments(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)

	feed(t, p, "sub-1", subscription.AggregateType, subscription.EventSubscriptionCreated,
		subscription.SubscriptionCreated{
			PlanID:          "plan-1",
			PlanMoney:       usd(2900),
			PaymentMethodID: "pm-1",
			CreatedAt:       time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		}, 1)

	paidAt := time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)
	feed(t, p, "sub-1", subscription.AggregateType, subscription.EventSubscriptionPaid,
		subscription.SubscriptionPaid{PaymentIntentID: "pi-1", When: paidAt}, 2)
	feed(t, p, "sub-1", subscription.AggregateType, subscription.EventSubscriptionPaid,
		subscription.SubscriptionPaid{PaymentIntentID: "pi-2", When: paidAt.AddDate(0, 1, 0)}, 3)

	raw, ok := rs.Get("subscriptions", "sub-1")
	require.True(t, ok)
	m := raw.(*readmodel.SubscriptionReadModel)
	assert.Equal(t, 2, m.PaymentsCount)
	assert.Equal(t, paidAt.AddDate(0, 1, 0), m.LastPaidAt)
	assert.False(t, m.Canceled)

	feed(t, p, "sub-1", subscription.AggregateType, subscription.EventSubscriptionCanceled,
		subscription.SubscriptionCanceled{}, 4)

	raw, _ = rs.Get("subscriptions", "sub-1")
	assert.True(t, raw.(*readmodel.SubscriptionReadModel).Canceled)
}

// ============================================
// Refund Projection Tests
// ============================================

func TestProjector_RefundSettledByGateway(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)

	feed(t, p, "rf-1", refund.AggregateType, refund.EventRefundCreated,
		refund.RefundCreated{Money: usd(5000), PaymentIntentID: "pi-1"}, 1)

	raw, ok := rs.Get("refunds", "rf-1")
	require.True(t, ok)
	m := raw.(*readmodel.RefundReadModel)
	assert.Equal(t, string(refund.StatusCreated), m.Status)
	assert.Equal(t, "pi-1", m.PaymentIntentID)

	// Gateway events carry the root aggregate type
	feed(t, p, "rf-1", refund.AggregateType, gateway.EventRefundCreated,
		gateway.RefundCreated{Refund: gateway.RefundResource{
			Resource: gateway.Resource{ID: "gwrf-1", GatewayID: "gw-1", Valid: true},
		}}, 2)

	raw, _ = rs.Get("refunds", "rf-1")
	assert.Equal(t, string(refund.StatusSucceeded), raw.(*readmodel.RefundReadModel).Status)
}

// ============================================
// Dispatch Tests
// ============================================

func TestProjector_IgnoresUnknownAggregates(t *testing.T) {
	rs := store.NewReadStore()
	p := NewProjector(rs)

	feed(t, p, "x-1", "SomethingElse", "SomethingHappened", struct{}{}, 1)

	assert.Empty(t, rs.GetAll("payment_intents"))
}

func TestProjector_MalformedPayload(t *testing.T) {
	p := NewProjector(store.NewReadStore())

	err := p.HandleEvent(context.Background(), []byte("k"), []byte("not json"))

	assert.Error(t, err)
}
