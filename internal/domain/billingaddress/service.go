package billingaddress

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/infrastructure/store"
)

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

func (s *Service) Load(ctx context.Context, id string) (*BillingAddress, error) {
	ba, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *BillingAddress {
		return &BillingAddress{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: billing address %s", store.ErrNotFound, id)
	}
	return ba, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*BillingAddress, error) {
	ba, err := Create(cmd)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, ba); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, ba)
	return ba, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*BillingAddress, error) {
	ba, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ba.Update(patch); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, ba); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, ba)
	return ba, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ba, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	if err := ba.Delete(); err != nil {
		return err
	}
	return aggregate.Persist(ctx, s.eventStore, ba)
}

func (s *Service) maybeSnapshot(ctx context.Context, ba *BillingAddress) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, ba, AggregateType); err != nil {
		log.Printf("[BillingAddress] Failed to create snapshot for %s: %v", ba.ID, err)
	}
}
