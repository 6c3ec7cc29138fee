package refund

import "github.com/example/payment-es/internal/domain/money"

const (
	EventRefundCreated  = "RefundCreated"
	EventRefundDeclined = "RefundDeclined"
	EventRefundCanceled = "RefundCanceled"
)

type RefundCreated struct {
	Money           money.Money `json:"money"`
	PaymentIntentID string      `json:"payment_intent_id"`
}

type RefundDeclined struct {
	Reason string `json:"reason"`
}

type RefundCanceled struct{}
