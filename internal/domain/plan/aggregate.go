package plan

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/interval"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "SubscriptionPlan"

var (
	ErrDeleted     = errors.New("subscription plan is deleted")
	ErrInvalidPlan = errors.New("invalid subscription plan")
)

// Patch carries a partial update; nil fields leave the stored value
// unchanged.
type Patch struct {
	Name        *string            `json:"name,omitempty"`
	Money       *money.Money       `json:"money,omitempty"`
	Interval    *interval.Interval `json:"interval,omitempty"`
	Description *string            `json:"description,omitempty"`
}

// Plan is the billing template a subscription charges against.
type Plan struct {
	aggregate.Root
	Name        string            `json:"name"`
	Money       money.Money       `json:"money"`
	Interval    interval.Interval `json:"interval"`
	Description string            `json:"description,omitempty"`
	Deleted     bool              `json:"deleted"`
}

type CreateCommand struct {
	ID          string
	Name        string
	Money       money.Money
	Interval    interval.Interval
	Description string
}

func Create(cmd CreateCommand) (*Plan, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	if cmd.Money.IsZero() || cmd.Money.IsNegative() {
		return nil, fmt.Errorf("%w: %s", money.ErrInvalidAmount, cmd.Money)
	}
	if cmd.Interval.IsZero() {
		return nil, fmt.Errorf("%w: interval is required", ErrInvalidPlan)
	}

	p := &Plan{}
	p.ID = cmd.ID
	event := PlanCreated{
		Name:        cmd.Name,
		Money:       cmd.Money,
		Interval:    cmd.Interval,
		Description: cmd.Description,
	}
	if err := aggregate.Record(p, AggregateType, EventPlanCreated, event); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plan) Update(patch Patch) error {
	if p.Deleted {
		return fmt.Errorf("%w: %s", ErrDeleted, p.ID)
	}
	if patch.Money != nil && (patch.Money.IsZero() || patch.Money.IsNegative()) {
		return fmt.Errorf("%w: %s", money.ErrInvalidAmount, *patch.Money)
	}
	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	return aggregate.Record(p, AggregateType, EventPlanUpdated, PlanUpdated{Patch: patch})
}

func (p *Plan) Delete() error {
	if p.Deleted {
		return fmt.Errorf("%w: %s", ErrDeleted, p.ID)
	}
	return aggregate.Record(p, AggregateType, EventPlanDeleted, PlanDeleted{})
}

// ApplyEvent applies a single event to the plan state (implements aggregate.Aggregate)
func (p *Plan) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventPlanCreated:
		var data PlanCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		p.ID = event.AggregateID
		p.Name = data.Name
		p.Money = data.Money
		p.Interval = data.Interval
		p.Description = data.Description
	case EventPlanUpdated:
		var data PlanUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if data.Patch.Name != nil {
			p.Name = *data.Patch.Name
		}
		if data.Patch.Money != nil {
			p.Money = *data.Patch.Money
		}
		if data.Patch.Interval != nil {
			p.Interval = *data.Patch.Interval
		}
		if data.Patch.Description != nil {
			p.Description = *data.Patch.Description
		}
	case EventPlanDeleted:
		p.Deleted = true
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	p.Version = event.Version
	return nil
}
