package paymentmethod

import (
	"context"
	"fmt"
	"log"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/token"
	"github.com/example/payment-es/internal/infrastructure/store"
)

type Service struct {
	eventStore store.EventStoreInterface
	tokens     *token.Service
}

func NewService(es store.EventStoreInterface, tokens *token.Service) *Service {
	return &Service{eventStore: es, tokens: tokens}
}

func (s *Service) Load(ctx context.Context, id string) (*PaymentMethod, error) {
	pm, found, err := aggregate.LoadAggregate(ctx, s.eventStore, id, func() *PaymentMethod {
		return &PaymentMethod{}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: payment method %s", store.ErrNotFound, id)
	}
	return pm, nil
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*PaymentMethod, error) {
	pm, err := Create(cmd)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pm); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, pm)
	return pm, nil
}

// CreateFromToken loads the token, promotes it into a payment method and
// marks the token used. Both aggregates persist their own streams; the token
// is consumed only after the method's events are stored.
func (s *Service) CreateFromToken(ctx context.Context, id, tokenID string) (*PaymentMethod, error) {
	tok, err := s.tokens.Load(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	pm, err := CreateFromToken(id, tok)
	if err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pm); err != nil {
		return nil, err
	}
	if err := tok.Use(); err != nil {
		return pm, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, tok); err != nil {
		return pm, err
	}
	s.maybeSnapshot(ctx, pm)
	return pm, nil
}

func (s *Service) Update(ctx context.Context, id string, address billingaddress.Address) (*PaymentMethod, error) {
	pm, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pm.Update(address); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pm); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, pm)
	return pm, nil
}

func (s *Service) Fail(ctx context.Context, id string) (*PaymentMethod, error) {
	pm, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pm.Fail(); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// ConfirmGateway records a processor-side payment method from the callback.
func (s *Service) ConfirmGateway(ctx context.Context, id string, fn func(*PaymentMethod) (gateway.PaymentMethodResource, error)) (*PaymentMethod, error) {
	pm, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pm.AddGatewayMethod(fn); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pm); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, pm)
	return pm, nil
}

func (s *Service) SuspendGateway(ctx context.Context, id, gatewayID, resourceID string, fn func(gateway.PaymentMethodResource, *PaymentMethod) (gateway.PaymentMethodResource, error)) (*PaymentMethod, error) {
	pm, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pm.SuspendGatewayMethod(gatewayID, resourceID, fn); err != nil {
		return nil, err
	}
	if err := aggregate.Persist(ctx, s.eventStore, pm); err != nil {
		return nil, err
	}
	s.maybeSnapshot(ctx, pm)
	return pm, nil
}

func (s *Service) maybeSnapshot(ctx context.Context, pm *PaymentMethod) {
	if err := aggregate.MaybeCreateSnapshot(ctx, s.eventStore, pm, AggregateType); err != nil {
		log.Printf("[PaymentMethod] Failed to create snapshot for payment method %s: %v", pm.ID, err)
	}
}
