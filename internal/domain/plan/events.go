package plan

import (
	"github.com/example/payment-es/internal/domain/interval"
	"github.com/example/payment-es/internal/domain/money"
)

const (
	EventPlanCreated = "SubscriptionPlanCreated"
	EventPlanUpdated = "SubscriptionPlanUpdated"
	EventPlanDeleted = "SubscriptionPlanDeleted"
)

type PlanCreated struct {
	Name        string            `json:"name"`
	Money       money.Money       `json:"money"`
	Interval    interval.Interval `json:"interval"`
	Description string            `json:"description,omitempty"`
}

type PlanUpdated struct {
	Patch Patch `json:"patch"`
}

type PlanDeleted struct{}
