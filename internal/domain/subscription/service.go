package subscription

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/clock"
	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/domain/paymentmethod"
	"github.com/example/payment-es/internal/domain/plan"
	"github.com/example/payment-es/internal/infrastructure/store"
)

type Service struct {
	eventStore store.EventStoreInterface
	plans      *plan.Service
	methods    *paymentmethod.Service
	intents    *paymentintent.Service
	clock      clock.Clock
}

func NewService(es store.EventStoreInterface, plans *plan.Service, methods *paymentmethod.Service, intents *paymentintent.Service, clk clock.Clock) *Service {
	return &Service{eventStore: es, plans: plans, methods: methods, intents: intents, clock: clk}
}

func (s *Service) Load(ctx context.Context, id string) (*Subscription, error) {
	sub, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *Subscription {
		return &Subscription{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: subscription %s", store.ErrNotFound, id)
	}
	return sub, nil
}

func (s *Service) Create(ctx context.Context, id, planID, paymentMethodID string) (*Subscription, error) {
	p, err := s.plans.Load(ctx, planID)
	if err != nil {
		return nil, err
	}
	pm, err := s.methods.Load(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	sub, err := Create(CreateCommand{ID: id, Plan: p, PaymentMethod: pm}, s.clock)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, sub); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, sub)
	return sub, nil
}

// Pay credits a captured payment intent against the subscription.
func (s *Service) Pay(ctx context.Context, id, paymentIntentID string) (*Subscription, error) {
	sub, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	intent, err := s.intents.Load(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if err := sub.Pay(intent, s.clock); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, sub); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, sub)
	return sub, nil
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, id, paymentMethodID string) (*Subscription, error) {
	sub, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	pm, err := s.methods.Load(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if err := sub.UpdatePaymentMethod(pm); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.Cancel(); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) maybeSnapshot(ctx context.Context, sub *Subscription) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, sub, AggregateType); err != nil {
		log.Printf("[Subscription] Failed to create snapshot for subscription %s: %v", sub.ID, err)
	}
}
