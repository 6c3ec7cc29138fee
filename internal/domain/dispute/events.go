package dispute

import "github.com/example/payment-es/internal/domain/money"

const (
	EventDisputeCreated = "DisputeCreated"
	EventDisputeWon     = "DisputeWon"
	EventDisputeLost    = "DisputeLost"
	EventDisputeExpired = "DisputeExpired"
)

type DisputeCreated struct {
	Money           money.Money `json:"money"`
	Fee             money.Money `json:"fee"`
	PaymentIntentID string      `json:"payment_intent_id"`
	Reason          string      `json:"reason"`
}

type DisputeWon struct{}

type DisputeLost struct{}

type DisputeExpired struct{}
