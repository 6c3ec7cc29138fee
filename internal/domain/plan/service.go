package plan

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

func (s *Service) Load(ctx context.Context, id string) (*Plan, error) {
	p, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *Plan {
		return &Plan{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: subscription plan %s", store.ErrNotFound, id)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Plan, error) {
	p, err := Create(cmd)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, p); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, p)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Plan, error) {
	p, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(patch); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, p); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, p)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*Plan, error) {
	p, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Delete(); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) maybeSnapshot(ctx context.Context, p *Plan) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, p, AggregateType); err != nil {
		log.Printf("[SubscriptionPlan] Failed to create snapshot for plan %s: %v", p.ID, err)
	}
}
