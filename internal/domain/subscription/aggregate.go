package subscription

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/example/payment-es/internal/clock"
	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/domain/paymentmethod"
	"github.com/example/payment-es/internal/domain/plan"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "Subscription"

// GracePeriodDays is how long past the period end a subscription stays
// payable before it counts as suspended.
const GracePeriodDays = 1

type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
	StatusCanceled  Status = "canceled"
)

var (
	ErrCanceled           = errors.New("subscription is canceled")
	ErrIntentNotLinked    = errors.New("payment intent is not linked to this subscription")
	ErrIntentNotSucceeded = errors.New("payment intent has not succeeded")
	ErrTenderMismatch     = errors.New("payment intent tender does not match subscription payment method")
	ErrAmountMismatch     = errors.New("payment intent amount does not match plan")
	ErrIntentAlreadyUsed  = errors.New("payment intent already used for this subscription")
)

// Subscription bills a payment method on the plan's interval. Its status is
// never stored; it is derived from the recurring tracker and the clock.
type Subscription struct {
	aggregate.Root
	PlanID          string           `json:"plan_id"`
	PlanMoney       money.Money      `json:"plan_money"`
	PaymentMethodID string           `json:"payment_method_id"`
	Tracker         RecurringTracker `json:"tracker"`
	Payments        []string         `json:"payments,omitempty"`
	Canceled        bool             `json:"canceled"`
}

// Status derives the lifecycle state at the given instant. ACTIVE within the
// current period, PENDING within the grace period past its end, SUSPENDED
// beyond that, CANCELED forever once canceled.
func (s *Subscription) Status(now time.Time) Status {
	if s.Canceled {
		return StatusCanceled
	}
	end := s.Tracker.EndDate()
	if !now.After(end) {
		return StatusActive
	}
	if !now.After(end.AddDate(0, 0, GracePeriodDays)) {
		return StatusPending
	}
	return StatusSuspended
}

type CreateCommand struct {
	ID            string
	Plan          *plan.Plan
	PaymentMethod *paymentmethod.PaymentMethod
}

func Create(cmd CreateCommand, clk clock.Clock) (*Subscription, error) {
	if err := cmd.PaymentMethod.Use(); err != nil {
		return nil, err
	}
	if cmd.Plan.Deleted {
		return nil, fmt.Errorf("%w: %s", plan.ErrDeleted, cmd.Plan.ID)
	}

	s := &Subscription{}
	s.ID = cmd.ID
	event := SubscriptionCreated{
		PlanID:          cmd.Plan.ID,
		PlanMoney:       cmd.Plan.Money,
		Interval:        cmd.Plan.Interval,
		PaymentMethodID: cmd.PaymentMethod.ID,
		CreatedAt:       clk.Now(),
	}
	if err := aggregate.Record(s, AggregateType, EventSubscriptionCreated, event); err != nil {
		return nil, err
	}
	return s, nil
}

// Pay credits a captured payment intent against the subscription and starts
// the next billing period from the payment date. The intent id doubles as an
// idempotency key; the same intent can never be credited twice.
func (s *Subscription) Pay(intent *paymentintent.PaymentIntent, clk clock.Clock) error {
	if s.Canceled {
		return fmt.Errorf("%w: %s", ErrCanceled, s.ID)
	}
	if intent.SubscriptionID == "" || intent.SubscriptionID != s.ID {
		return fmt.Errorf("%w: intent %s carries subscription %q", ErrIntentNotLinked, intent.ID, intent.SubscriptionID)
	}
	if intent.TenderID != s.PaymentMethodID {
		return fmt.Errorf("%w: intent tender %q, subscription method %q", ErrTenderMismatch, intent.TenderID, s.PaymentMethodID)
	}
	if !intent.Is(paymentintent.StatusSucceeded) {
		return fmt.Errorf("%w: intent %s is %s", ErrIntentNotSucceeded, intent.ID, intent.Status)
	}
	if !intent.Money.Equals(s.PlanMoney) {
		return fmt.Errorf("%w: intent %s, plan %s", ErrAmountMismatch, intent.Money, s.PlanMoney)
	}
	if lo.Contains(s.Payments, intent.ID) {
		return fmt.Errorf("%w: intent %s", ErrIntentAlreadyUsed, intent.ID)
	}
	return aggregate.Record(s, AggregateType, EventSubscriptionPaid, SubscriptionPaid{
		PaymentIntentID: intent.ID,
		When:            clk.Now(),
	})
}

func (s *Subscription) UpdatePaymentMethod(pm *paymentmethod.PaymentMethod) error {
	if s.Canceled {
		return fmt.Errorf("%w: %s", ErrCanceled, s.ID)
	}
	if err := pm.Use(); err != nil {
		return err
	}
	return aggregate.Record(s, AggregateType, EventSubscriptionPaymentMethodUpdated, SubscriptionPaymentMethodUpdated{PaymentMethodID: pm.ID})
}

func (s *Subscription) Cancel() error {
	if s.Canceled {
		return fmt.Errorf("%w: %s", ErrCanceled, s.ID)
	}
	return aggregate.Record(s, AggregateType, EventSubscriptionCanceled, SubscriptionCanceled{})
}

// ApplyEvent applies a single event to the subscription state (implements aggregate.Aggregate)
func (s *Subscription) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventSubscriptionCreated:
		var data SubscriptionCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		s.ID = event.AggregateID
		s.PlanID = data.PlanID
		s.PlanMoney = data.PlanMoney
		s.PaymentMethodID = data.PaymentMethodID
		s.Tracker = NewTracker(data.Interval, data.CreatedAt)
	case EventSubscriptionPaid:
		var data SubscriptionPaid
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		s.Payments = append(s.Payments, data.PaymentIntentID)
		s.Tracker = s.Tracker.Track(data.When)
	case EventSubscriptionPaymentMethodUpdated:
		var data SubscriptionPaymentMethodUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		s.PaymentMethodID = data.PaymentMethodID
	case EventSubscriptionCanceled:
		s.Canceled = true
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	s.Version = event.Version
	return nil
}
