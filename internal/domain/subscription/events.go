package subscription

import (
	"time"

	"github.com/example/payment-es/internal/domain/interval"
	"github.com/example/payment-es/internal/domain/money"
)

const (
	EventSubscriptionCreated              = "SubscriptionCreated"
	EventSubscriptionPaid                 = "SubscriptionPaid"
	EventSubscriptionPaymentMethodUpdated = "SubscriptionPaymentMethodUpdated"
	EventSubscriptionCanceled             = "SubscriptionCanceled"
)

// SubscriptionCreated snapshots the plan's billing terms so later plan edits
// do not rewrite history. CreatedAt seeds the recurring tracker.
type SubscriptionCreated struct {
	PlanID          string            `json:"plan_id"`
	PlanMoney       money.Money       `json:"plan_money"`
	Interval        interval.Interval `json:"interval"`
	PaymentMethodID string            `json:"payment_method_id"`
	CreatedAt       time.Time         `json:"created_at"`
}

type SubscriptionPaid struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	When            time.Time `json:"when"`
}

type SubscriptionPaymentMethodUpdated struct {
	PaymentMethodID string `json:"payment_method_id"`
}

type SubscriptionCanceled struct{}
