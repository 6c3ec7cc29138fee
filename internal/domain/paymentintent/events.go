package paymentintent

import (
	"github.com/example/payment-es/internal/domain/merchant"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/threeds"
)

const (
	EventPaymentIntentAuthorized = "PaymentIntentAuthorized"
	EventPaymentIntentCaptured   = "PaymentIntentCaptured"
	EventPaymentIntentCanceled   = "PaymentIntentCanceled"
	EventPaymentIntentDeclined   = "PaymentIntentDeclined"
)

type PaymentIntentAuthorized struct {
	Money              money.Money         `json:"money"`
	MerchantDescriptor merchant.Descriptor `json:"merchant_descriptor"`
	Description        string              `json:"description,omitempty"`
	TenderID           string              `json:"tender_id,omitempty"`
	ThreeDS            *threeds.Result     `json:"three_ds,omitempty"`
	SubscriptionID     string              `json:"subscription_id,omitempty"`
}

// PaymentIntentCaptured carries the captured amount only when the caller
// asked for a partial capture, and the tender id only when the intent was
// authorized without one.
type PaymentIntentCaptured struct {
	Money    *money.Money `json:"money,omitempty"`
	TenderID string       `json:"tender_id,omitempty"`
}

type PaymentIntentCanceled struct{}

type PaymentIntentDeclined struct {
	Reason string `json:"reason"`
}
