package token

import (
	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/card"
)

const (
	EventTokenCreated  = "TokenCreated"
	EventTokenUsed     = "TokenUsed"
	EventTokenDeclined = "TokenDeclined"
)

type TokenCreated struct {
	Card           card.Card               `json:"card"`
	BillingAddress *billingaddress.Address `json:"billing_address,omitempty"`
}

type TokenUsed struct{}

type TokenDeclined struct {
	Reason string `json:"reason"`
}
