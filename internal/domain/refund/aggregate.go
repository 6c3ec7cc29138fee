package refund

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "Refund"

type Status string

const (
	StatusCreated        Status = "created"
	StatusRequiresAction Status = "requires_action"
	StatusSucceeded      Status = "succeeded"
	StatusDeclined       Status = "declined"
	StatusCanceled       Status = "canceled"
)

var (
	ErrUnsupportedIntentStatus = errors.New("payment intent status does not support refunds")
	ErrNotOpen                 = errors.New("refund is no longer open")
)

// Refund repays part or all of one captured payment intent. No running
// total across refunds is enforced; each refund is bounded by the intent's
// captured money on its own.
type Refund struct {
	aggregate.Root
	Money           money.Money         `json:"money"`
	PaymentIntentID string              `json:"payment_intent_id"`
	Status          Status              `json:"status"`
	DeclineReason   string              `json:"decline_reason,omitempty"`
	Gateway         gateway.RefundState `json:"gateway"`
}

func (r *Refund) Is(status Status) bool { return r.Status == status }

func (r *Refund) open() bool {
	return r.Status == StatusCreated || r.Status == StatusRequiresAction
}

type CreateCommand struct {
	ID     string
	Money  money.Money
	Intent *paymentintent.PaymentIntent
}

func Create(cmd CreateCommand) (*Refund, error) {
	if cmd.Money.IsZero() || cmd.Money.IsNegative() {
		return nil, fmt.Errorf("%w: %s", money.ErrInvalidAmount, cmd.Money)
	}
	if !cmd.Intent.Is(paymentintent.StatusSucceeded) {
		return nil, fmt.Errorf("%w: intent %s is %s", ErrUnsupportedIntentStatus, cmd.Intent.ID, cmd.Intent.Status)
	}
	if cmd.Money.Currency != cmd.Intent.Money.Currency {
		return nil, fmt.Errorf("%w: %s vs %s", money.ErrCurrencyMismatch, cmd.Money.Currency, cmd.Intent.Money.Currency)
	}
	if cmd.Intent.Money.LessThan(cmd.Money) {
		return nil, fmt.Errorf("%w: refund %s exceeds captured %s", money.ErrInvalidAmount, cmd.Money, cmd.Intent.Money)
	}

	r := &Refund{}
	r.ID = cmd.ID
	event := RefundCreated{Money: cmd.Money, PaymentIntentID: cmd.Intent.ID}
	if err := aggregate.Record(r, AggregateType, EventRefundCreated, event); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Refund) Decline(reason string) error {
	if !r.open() {
		return fmt.Errorf("%w: status %s", ErrNotOpen, r.Status)
	}
	return aggregate.Record(r, AggregateType, EventRefundDeclined, RefundDeclined{Reason: reason})
}

func (r *Refund) Cancel() error {
	if !r.open() {
		return fmt.Errorf("%w: status %s", ErrNotOpen, r.Status)
	}
	return aggregate.Record(r, AggregateType, EventRefundCanceled, RefundCanceled{})
}

// AddGatewayRefund records the processor-side refund from the callback. A
// valid resource settles the refund as SUCCEEDED.
func (r *Refund) AddGatewayRefund(fn func(*Refund) (gateway.RefundResource, error)) error {
	resource, err := fn(r)
	if err != nil {
		return err
	}
	if !resource.IsValid() {
		return fmt.Errorf("%w: refund %s on gateway %s", gateway.ErrInvalidResource, resource.ID, resource.GatewayID)
	}
	return aggregate.Record(r, AggregateType, gateway.EventRefundCreated, gateway.RefundCreated{Refund: resource})
}

func (r *Refund) CancelGatewayRefund(fn func(*gateway.RefundResource, *Refund) (gateway.RefundResource, error)) error {
	resource, err := fn(r.Gateway.Refund, r)
	if err != nil {
		return err
	}
	return aggregate.Record(r, AggregateType, gateway.EventRefundCanceled, gateway.RefundCanceled{Refund: resource})
}

// ApplyEvent applies a single event to the refund state (implements aggregate.Aggregate)
func (r *Refund) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventRefundCreated:
		var data RefundCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		r.ID = event.AggregateID
		r.Money = data.Money
		r.PaymentIntentID = data.PaymentIntentID
		r.Status = StatusCreated
	case EventRefundDeclined:
		var data RefundDeclined
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		r.Status = StatusDeclined
		r.DeclineReason = data.Reason
	case EventRefundCanceled:
		r.Status = StatusCanceled
	case gateway.EventRefundCreated:
		var data gateway.RefundCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		r.Gateway.ApplyCreated(data)
		r.Status = StatusSucceeded
	case gateway.EventRefundCanceled:
		var data gateway.RefundCanceled
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		r.Gateway.ApplyCanceled(data)
		r.Status = StatusCanceled
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	r.Version = event.Version
	return nil
}
