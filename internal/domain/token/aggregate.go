package token

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/clock"
	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/card"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "Token"

type Status string

const (
	StatusPending  Status = "pending"
	StatusValid    Status = "valid"
	StatusUsed     Status = "used"
	StatusRevoked  Status = "revoked"
	StatusDeclined Status = "declined"
)

var (
	// ErrNotUsable covers every non-VALID token: pending, used, declined.
	ErrNotUsable = errors.New("token is expired or not usable")
)

// Token is a single-use stand-in for a card. It becomes VALID only once the
// external processor confirms it via a gateway token event.
type Token struct {
	aggregate.Root
	Card           card.Card               `json:"card"`
	BillingAddress *billingaddress.Address `json:"billing_address,omitempty"`
	Status         Status                  `json:"status"`
	DeclineReason  string                  `json:"decline_reason,omitempty"`
	Gateway        gateway.TokensState     `json:"gateway"`
}

func (t *Token) Is(status Status) bool { return t.Status == status }

func (t *Token) IsValid() bool { return t.Is(StatusValid) }

type CreateCommand struct {
	ID             string
	Card           card.Card
	BillingAddress *billingaddress.Address
}

// Create tokenizes a card. The card must not be past its expiration month
// plus the one-month grace.
func Create(cmd CreateCommand, clk clock.Clock) (*Token, error) {
	if cmd.Card.Expired(clk.Now()) {
		return nil, card.ErrExpired
	}

	t := &Token{}
	t.ID = cmd.ID
	event := TokenCreated{Card: cmd.Card, BillingAddress: cmd.BillingAddress}
	if err := aggregate.Record(t, AggregateType, EventTokenCreated, event); err != nil {
		return nil, err
	}
	return t, nil
}

// Use consumes the token for a payment. Valid tokens only; a token is spent
// by its first use.
func (t *Token) Use() error {
	if !t.IsValid() {
		return fmt.Errorf("%w: status %s", ErrNotUsable, t.Status)
	}
	return aggregate.Record(t, AggregateType, EventTokenUsed, TokenUsed{})
}

func (t *Token) Decline(reason string) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: status %s", ErrNotUsable, t.Status)
	}
	return aggregate.Record(t, AggregateType, EventTokenDeclined, TokenDeclined{Reason: reason})
}

// AddGatewayToken records the processor-side token returned by the callback.
// Confirmation is what moves a pending token to VALID.
func (t *Token) AddGatewayToken(fn func(*Token) (gateway.TokenResource, error)) error {
	resource, err := fn(t)
	if err != nil {
		return err
	}
	if !resource.IsValid() {
		return fmt.Errorf("%w: token %s on gateway %s", gateway.ErrInvalidResource, resource.ID, resource.GatewayID)
	}
	return aggregate.Record(t, AggregateType, gateway.EventTokenAdded, gateway.TokenAdded{Token: resource})
}

// ApplyEvent applies a single event to the token state (implements aggregate.Aggregate)
func (t *Token) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventTokenCreated:
		var data TokenCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		t.ID = event.AggregateID
		t.Card = data.Card
		t.BillingAddress = data.BillingAddress
		t.Status = StatusPending
	case EventTokenUsed:
		t.Status = StatusUsed
	case EventTokenDeclined:
		var data TokenDeclined
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		t.Status = StatusDeclined
		t.DeclineReason = data.Reason
	case gateway.EventTokenAdded:
		var data gateway.TokenAdded
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		t.Gateway.ApplyAdded(data)
		if t.Status == StatusPending {
			t.Status = StatusValid
		}
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	t.Version = event.Version
	return nil
}
