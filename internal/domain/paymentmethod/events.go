package paymentmethod

import (
	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/source"
	"github.com/example/payment-es/internal/domain/threeds"
)

const (
	EventPaymentMethodCreated   = "PaymentMethodCreated"
	EventPaymentMethodUpdated   = "PaymentMethodUpdated"
	EventPaymentMethodFailed    = "PaymentMethodFailed"
	EventPaymentMethodSuspended = "PaymentMethodSuspended"
)

type PaymentMethodCreated struct {
	BillingAddress billingaddress.Address `json:"billing_address"`
	Source         source.Source          `json:"source"`
	ThreeDS        *threeds.Result        `json:"three_ds,omitempty"`
	// TokenID traces a method created from a token back to it.
	TokenID string `json:"token_id,omitempty"`
}

type PaymentMethodUpdated struct {
	BillingAddress billingaddress.Address `json:"billing_address"`
}

type PaymentMethodFailed struct{}

type PaymentMethodSuspended struct{}
