package paymentintent

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/infrastructure/store"
)

type Service struct {
	eventStore store.EventStoreInterface
}

func NewService(es store.EventStoreInterface) *Service {
	return &Service{eventStore: es}
}

func (s *Service) Load(ctx context.Context, id string) (*PaymentIntent, error) {
	pi, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *PaymentIntent {
		return &PaymentIntent{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: payment intent %s", store.ErrNotFound, id)
	}
	return pi, nil
}

// Authorize creates and persists a new intent. When the tender is consumed
// by the authorization (a token records TokenUsed) its stream is persisted
// after the intent's, so a store conflict on the intent leaves the tender
// untouched.
func (s *Service) Authorize(ctx context.Context, cmd AuthorizeCommand) (*PaymentIntent, error) {
	pi, err := Authorize(cmd)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pi); err != nil {
		return nil, err
	}
	if err := s.persistTender(ctx, cmd.Tender); err != nil {
		return pi, err
	}
	s.maybeSnapshot(ctx, pi)
	return pi, nil
}

func (s *Service) Capture(ctx context.Context, id string, amount *money.Money, tender Tender) (*PaymentIntent, error) {
	pi, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pi.Capture(amount, tender); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pi); err != nil {
		return nil, err
	}
	if err := s.persistTender(ctx, tender); err != nil {
		return pi, err
	}
	s.maybeSnapshot(ctx, pi)
	return pi, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*PaymentIntent, error) {
	pi, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pi.Cancel(); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pi); err != nil {
		return nil, err
	}
	return pi, nil
}

func (s *Service) Decline(ctx context.Context, id, reason string) (*PaymentIntent, error) {
	pi, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pi.Decline(reason); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pi); err != nil {
		return nil, err
	}
	return pi, nil
}

// ConfirmGateway records the processor-side authorization for the intent.
func (s *Service) ConfirmGateway(ctx context.Context, id string, fn func(*PaymentIntent) (gateway.PaymentIntentResource, error)) (*PaymentIntent, error) {
	pi, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pi.AddGatewayIntent(fn); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pi); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, pi)
	return pi, nil
}

func (s *Service) persistTender(ctx context.Context, tender Tender) error {
	agg, ok := tender.(aggregate.Aggregate)
	if !ok || len(agg.RecordedEvents()) == 0 {
		return nil
	}
	return aggregate.Persist(ctx, s.eventStore, agg)
}

func (s *Service) maybeSnapshot(ctx context.Context, pi *PaymentIntent) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, pi, AggregateType); err != nil {
		log.Printf("[PaymentIntent] Failed to create snapshot for payment intent %s: %v", pi.ID, err)
	}
}
