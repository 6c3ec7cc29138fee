package billingaddress

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "BillingAddress"

var ErrDeleted = errors.New("billing address is deleted")

// BillingAddress is a simple create/update/delete event-sourced record.
// Deletion clears the in-memory address; the identity and the event stream
// persist forever.
type BillingAddress struct {
	aggregate.Root
	Address Address `json:"address"`
	Deleted bool    `json:"deleted"`
}

type CreateCommand struct {
	ID      string
	Address Address
}

func Create(cmd CreateCommand) (*BillingAddress, error) {
	if err := cmd.Address.Validate(); err != nil {
		return nil, err
	}

	ba := &BillingAddress{}
	ba.ID = cmd.ID
	if err := aggregate.Record(ba, AggregateType, EventBillingAddressCreated, BillingAddressCreated{Address: cmd.Address}); err != nil {
		return nil, err
	}
	return ba, nil
}

// Update merges a patch; nil fields keep their stored value.
func (b *BillingAddress) Update(patch Patch) error {
	if b.Deleted {
		return ErrDeleted
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	return aggregate.Record(b, AggregateType, EventBillingAddressUpdated, BillingAddressUpdated{Patch: patch})
}

func (b *BillingAddress) Delete() error {
	if b.Deleted {
		return ErrDeleted
	}
	return aggregate.Record(b, AggregateType, EventBillingAddressDeleted, BillingAddressDeleted{})
}

// ApplyEvent applies a single event to the aggregate state (implements aggregate.Aggregate)
func (b *BillingAddress) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventBillingAddressCreated:
		var data BillingAddressCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		b.ID = event.AggregateID
		b.Address = data.Address
		b.Deleted = false
	case EventBillingAddressUpdated:
		var data BillingAddressUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		b.Address = b.Address.Merge(data.Patch)
	case EventBillingAddressDeleted:
		b.Address = Address{}
		b.Deleted = true
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	b.Version = event.Version
	return nil
}
