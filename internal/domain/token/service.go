package token

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/clock"
	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/infrastructure/store"
)

type Service struct {
	eventStore store.EventStoreInterface
	clock      clock.Clock
}

func NewService(es store.EventStoreInterface, clk clock.Clock) *Service {
	return &Service{eventStore: es, clock: clk}
}

func (s *Service) Load(ctx context.Context, id string) (*Token, error) {
	t, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *Token {
		return &Token{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: token %s", store.ErrNotFound, id)
	}
	return t, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Token, error) {
	t, err := Create(cmd, s.clock)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, t); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, t)
	return t, nil
}

func (s *Service) Decline(ctx context.Context, id, reason string) (*Token, error) {
	t, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.Decline(reason); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ConfirmGateway records a processor-side token produced by the callback.
func (s *Service) ConfirmGateway(ctx context.Context, id string, fn func(*Token) (gateway.TokenResource, error)) (*Token, error) {
	t, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.AddGatewayToken(fn); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, t); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, t)
	return t, nil
}

func (s *Service) maybeSnapshot(ctx context.Context, t *Token) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, t, AggregateType); err != nil {
		log.Printf("[Token] Failed to create snapshot for token %s: %v", t.ID, err)
	}
}
