// Package gateway models the external-processor side of payment aggregates:
// confirmations coming back from a gateway are recorded as a second event
// stream replayed into the same aggregate, sharing its version counter.
package gateway

import (
	"encoding/json"
	"errors"

	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/card"
	"github.com/example/payment-es/internal/domain/merchant"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/source"
	"github.com/example/payment-es/internal/domain/threeds"
)

// ErrInvalidResource rejects a gateway callback whose returned resource
// reports itself invalid.
var ErrInvalidResource = errors.New("gateway returned an invalid resource")

// Resource is the minimal contract every processor-side record satisfies:
// stable id, owning gateway id, validity flag and the raw processor payload.
type Resource struct {
	ID        string          `json:"id"`
	GatewayID string          `json:"gateway_id"`
	Valid     bool            `json:"valid"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

func (r Resource) IsValid() bool { return r.Valid }

// PaymentIntentResource is a processor-side authorization/charge.
type PaymentIntentResource struct {
	Resource
	Money              money.Money         `json:"money"`
	MerchantDescriptor merchant.Descriptor `json:"merchant_descriptor"`
	Description        string              `json:"description"`
	PaymentMethodID    string              `json:"payment_method_id,omitempty"`
	ThreeDS            *threeds.Result     `json:"three_ds,omitempty"`
}

// PaymentMethodResource is a processor-side stored payment method.
type PaymentMethodResource struct {
	Resource
	BillingAddress billingaddress.Address `json:"billing_address"`
	Source         source.Source          `json:"source"`
}

// TokenResource is a processor-side single-use card token.
type TokenResource struct {
	Resource
	Card card.Card `json:"card"`
}

// RefundResource is a processor-side refund.
type RefundResource struct {
	Resource
	Money           money.Money `json:"money"`
	PaymentIntentID string      `json:"payment_intent_id"`
}
