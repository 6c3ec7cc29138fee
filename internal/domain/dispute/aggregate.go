package dispute

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "Dispute"

type Status string

const (
	StatusCreated Status = "created"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusExpired Status = "expired"
)

var (
	ErrUnsupportedIntentStatus = errors.New("payment intent status does not support disputes")
	ErrAlreadyResolved         = errors.New("dispute is already resolved")
)

// Dispute is a chargeback against a captured payment intent. Once resolved
// (won, lost or expired) it never transitions again.
type Dispute struct {
	aggregate.Root
	Money           money.Money `json:"money"`
	Fee             money.Money `json:"fee"`
	PaymentIntentID string      `json:"payment_intent_id"`
	Reason          string      `json:"reason"`
	Status          Status      `json:"status"`
}

func (d *Dispute) Is(status Status) bool { return d.Status == status }

type CreateCommand struct {
	ID     string
	Money  money.Money
	Fee    money.Money
	Reason string
	Intent *paymentintent.PaymentIntent
}

func Create(cmd CreateCommand) (*Dispute, error) {
	if !cmd.Intent.Is(paymentintent.StatusSucceeded) {
		return nil, fmt.Errorf("%w: intent %s is %s", ErrUnsupportedIntentStatus, cmd.Intent.ID, cmd.Intent.Status)
	}
	if cmd.Money.Currency != cmd.Intent.Money.Currency {
		return nil, fmt.Errorf("%w: %s vs %s", money.ErrCurrencyMismatch, cmd.Money.Currency, cmd.Intent.Money.Currency)
	}
	if cmd.Intent.Money.LessThan(cmd.Money) {
		return nil, fmt.Errorf("%w: disputed %s exceeds captured %s", money.ErrInvalidAmount, cmd.Money, cmd.Intent.Money)
	}

	d := &Dispute{}
	d.ID = cmd.ID
	event := DisputeCreated{
		Money:           cmd.Money,
		Fee:             cmd.Fee,
		PaymentIntentID: cmd.Intent.ID,
		Reason:          cmd.Reason,
	}
	if err := aggregate.Record(d, AggregateType, EventDisputeCreated, event); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dispute) Win() error {
	if d.Status != StatusCreated {
		return fmt.Errorf("%w: status %s", ErrAlreadyResolved, d.Status)
	}
	return aggregate.Record(d, AggregateType, EventDisputeWon, DisputeWon{})
}

func (d *Dispute) Lose() error {
	if d.Status != StatusCreated {
		return fmt.Errorf("%w: status %s", ErrAlreadyResolved, d.Status)
	}
	return aggregate.Record(d, AggregateType, EventDisputeLost, DisputeLost{})
}

func (d *Dispute) Expire() error {
	if d.Status != StatusCreated {
		return fmt.Errorf("%w: status %s", ErrAlreadyResolved, d.Status)
	}
	return aggregate.Record(d, AggregateType, EventDisputeExpired, DisputeExpired{})
}

// ApplyEvent applies a single event to the dispute state (implements aggregate.Aggregate)
func (d *Dispute) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventDisputeCreated:
		var data DisputeCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		d.ID = event.AggregateID
		d.Money = data.Money
		d.Fee = data.Fee
		d.PaymentIntentID = data.PaymentIntentID
		d.Reason = data.Reason
		d.Status = StatusCreated
	case EventDisputeWon:
		d.Status = StatusWon
	case EventDisputeLost:
		d.Status = StatusLost
	case EventDisputeExpired:
		d.Status = StatusExpired
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	d.Version = event.Version
	return nil
}
