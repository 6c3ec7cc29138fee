package dispute

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/infrastructure/store"
)

type Service struct {
	eventStore store.EventStoreInterface
	intents    *paymentintent.Service
}

func NewService(es store.EventStoreInterface, intents *paymentintent.Service) *Service {
	return &Service{eventStore: es, intents: intents}
}

func (s *Service) Load(ctx context.Context, id string) (*Dispute, error) {
	d, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *Dispute {
		return &Dispute{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: dispute %s", store.ErrNotFound, id)
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, id string, amount, fee money.Money, paymentIntentID, reason string) (*Dispute, error) {
	intent, err := s.intents.Load(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	d, err := Create(CreateCommand{ID: id, Money: amount, Fee: fee, Reason: reason, Intent: intent})
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, d); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, d)
	return d, nil
}

func (s *Service) Win(ctx context.Context, id string) (*Dispute, error) {
	return s.resolve(ctx, id, (*Dispute).Win)
}

func (s *Service) Lose(ctx context.Context, id string) (*Dispute, error) {
	return s.resolve(ctx, id, (*Dispute).Lose)
}

func (s *Service) Expire(ctx context.Context, id string) (*Dispute, error) {
	return s.resolve(ctx, id, (*Dispute).Expire)
}

func (s *Service) resolve(ctx context.Context, id string, transition func(*Dispute) error) (*Dispute, error) {
	d, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transition(d); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) maybeSnapshot(ctx context.Context, d *Dispute) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, d, AggregateType); err != nil {
		log.Printf("[Dispute] Failed to create snapshot for dispute %s: %v", d.ID, err)
	}
}
