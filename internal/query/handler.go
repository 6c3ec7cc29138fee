package query

import (
	"github.com/samber/lo"

	"github.com/example/payment-es/internal/infrastructure/store"
)

// Handler answers queries from the read models maintained by the projector.
type Handler struct {
	readStore store.ReadStoreInterface
}

func NewHandler(readStore store.ReadStoreInterface) *Handler {
	return &Handler{readStore: readStore}
}

// Payment intents
func (h *Handler) GetPaymentIntent(id string) (*PaymentIntentReadModel, bool) {
	data, ok := h.readStore.Get("payment_intents", id)
	if !ok {
		return nil, false
	}
	return data.(*PaymentIntentReadModel), true
}

func (h *Handler) ListPaymentIntents() []*PaymentIntentReadModel {
	return collect[PaymentIntentReadModel](h.readStore.GetAll("payment_intents"))
}

// Payment methods
func (h *Handler) GetPaymentMethod(id string) (*PaymentMethodReadModel, bool) {
	data, ok := h.readStore.Get("payment_methods", id)
	if !ok {
		return nil, false
	}
	return data.(*PaymentMethodReadModel), true
}

// Subscriptions
func (h *Handler) GetSubscription(id string) (*SubscriptionReadModel, bool) {
	data, ok := h.readStore.Get("subscriptions", id)
	if !ok {
		return nil, false
	}
	return data.(*SubscriptionReadModel), true
}

func (h *Handler) ListSubscriptions() []*SubscriptionReadModel {
	return collect[SubscriptionReadModel](h.readStore.GetAll("subscriptions"))
}

// Refunds
func (h *Handler) GetRefund(id string) (*RefundReadModel, bool) {
	data, ok := h.readStore.Get("refunds", id)
	if !ok {
		return nil, false
	}
	return data.(*RefundReadModel), true
}

func (h *Handler) ListRefundsByPaymentIntent(paymentIntentID string) []*RefundReadModel {
	refunds := collect[RefundReadModel](h.readStore.GetAll("refunds"))
	return lo.Filter(refunds, func(r *RefundReadModel, _ int) bool {
		return r.PaymentIntentID == paymentIntentID
	})
}

func collect[T any](items []any) []*T {
	return lo.Map(items, func(item any, _ int) *T { return item.(*T) })
}
