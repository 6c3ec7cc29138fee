package refund

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/gateway"
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

func (s *Service) Load(ctx context.Context, id string) (*Refund, error) {
	r, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *Refund {
		return &Refund{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: refund %s", store.ErrNotFound, id)
	}
	return r, nil
}

// Create validates the refund against the current state of the referenced
// payment intent and persists it.
func (s *Service) Create(ctx context.Context, id string, amount money.Money, paymentIntentID string) (*Refund, error) {
	intent, err := s.intents.Load(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	r, err := Create(CreateCommand{ID: id, Money: amount, Intent: intent})
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, r); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, r)
	return r, nil
}

func (s *Service) Decline(ctx context.Context, id, reason string) (*Refund, error) {
	r, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Decline(reason); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*Refund, error) {
	r, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.Cancel(); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ConfirmGateway records the processor-side refund, settling the aggregate.
func (s *Service) ConfirmGateway(ctx context.Context, id string, fn func(*Refund) (gateway.RefundResource, error)) (*Refund, error) {
	r, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.AddGatewayRefund(fn); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, r); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, r)
	return r, nil
}

func (s *Service) maybeSnapshot(ctx context.Context, r *Refund) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, r, AggregateType); err != nil {
		log.Printf("[Refund] Failed to create snapshot for refund %s: %v", r.ID, err)
	}
}
