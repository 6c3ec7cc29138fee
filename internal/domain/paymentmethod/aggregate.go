package paymentmethod

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/billingaddress"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/source"
	"github.com/example/payment-es/internal/domain/threeds"
	"github.com/example/payment-es/internal/domain/token"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "PaymentMethod"

type Status string

const (
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusSucceeded Status = "succeeded"
	StatusSuspended Status = "suspended"
)

var (
	ErrSuspended  = errors.New("payment method is suspended or not usable")
	ErrNotPending = errors.New("payment method is not pending")
)

// PaymentMethod is a reusable tender. It is PENDING until the first gateway
// confirmation and SUSPENDED only when every processor-level representation
// of it has been invalidated.
type PaymentMethod struct {
	aggregate.Root
	BillingAddress billingaddress.Address `json:"billing_address"`
	Source         source.Source          `json:"source"`
	ThreeDS        *threeds.Result        `json:"three_ds,omitempty"`
	TokenID        string                 `json:"token_id,omitempty"`
	Status         Status                 `json:"status"`
	Gateway        gateway.MethodsState   `json:"gateway"`
}

func (pm *PaymentMethod) Is(status Status) bool { return pm.Status == status }

func (pm *PaymentMethod) IsValid() bool { return pm.Is(StatusSucceeded) }

type CreateCommand struct {
	ID             string
	BillingAddress billingaddress.Address
	Source         source.Source
	ThreeDS        *threeds.Result
}

func Create(cmd CreateCommand) (*PaymentMethod, error) {
	if err := cmd.BillingAddress.Validate(); err != nil {
		return nil, err
	}

	pm := &PaymentMethod{}
	pm.ID = cmd.ID
	event := PaymentMethodCreated{
		BillingAddress: cmd.BillingAddress,
		Source:         cmd.Source,
		ThreeDS:        cmd.ThreeDS,
	}
	if err := aggregate.Record(pm, AggregateType, EventPaymentMethodCreated, event); err != nil {
		return nil, err
	}
	return pm, nil
}

// CreateFromToken promotes a valid token into a payment method, copying the
// token's source and billing address and keeping the token id for tracing.
func CreateFromToken(id string, tok *token.Token) (*PaymentMethod, error) {
	if !tok.IsValid() {
		return nil, fmt.Errorf("%w: token %s status %s", token.ErrNotUsable, tok.ID, tok.Status)
	}

	var address billingaddress.Address
	if tok.BillingAddress != nil {
		address = *tok.BillingAddress
	}

	pm := &PaymentMethod{}
	pm.ID = id
	event := PaymentMethodCreated{
		BillingAddress: address,
		Source:         source.FromCard(tok.Card),
		TokenID:        tok.ID,
	}
	if err := aggregate.Record(pm, AggregateType, EventPaymentMethodCreated, event); err != nil {
		return nil, err
	}
	return pm, nil
}

func (pm *PaymentMethod) Update(address billingaddress.Address) error {
	if pm.Status == StatusFailed || pm.Status == StatusSuspended {
		return fmt.Errorf("%w: status %s", ErrSuspended, pm.Status)
	}
	if err := address.Validate(); err != nil {
		return err
	}
	return aggregate.Record(pm, AggregateType, EventPaymentMethodUpdated, PaymentMethodUpdated{BillingAddress: address})
}

func (pm *PaymentMethod) Fail() error {
	if pm.Status != StatusPending {
		return fmt.Errorf("%w: status %s", ErrNotPending, pm.Status)
	}
	return aggregate.Record(pm, AggregateType, EventPaymentMethodFailed, PaymentMethodFailed{})
}

func (pm *PaymentMethod) Suspend() error {
	if pm.Status != StatusSucceeded {
		return fmt.Errorf("%w: status %s", ErrSuspended, pm.Status)
	}
	return aggregate.Record(pm, AggregateType, EventPaymentMethodSuspended, PaymentMethodSuspended{})
}

// Use marks the method as backing a payment. It records no event; it is the
// validity gate dependent aggregates call before charging.
func (pm *PaymentMethod) Use() error {
	if !pm.IsValid() {
		return fmt.Errorf("%w: status %s", ErrSuspended, pm.Status)
	}
	return nil
}

// AddGatewayMethod records the processor-side method returned by the
// callback. The first confirmation moves the method from PENDING to SUCCEEDED.
func (pm *PaymentMethod) AddGatewayMethod(fn func(*PaymentMethod) (gateway.PaymentMethodResource, error)) error {
	resource, err := fn(pm)
	if err != nil {
		return err
	}
	if !resource.IsValid() {
		return fmt.Errorf("%w: payment method %s on gateway %s", gateway.ErrInvalidResource, resource.ID, resource.GatewayID)
	}
	return aggregate.Record(pm, AggregateType, gateway.EventPaymentMethodAdded, gateway.PaymentMethodAdded{PaymentMethod: resource})
}

// UpdateGatewayMethod replaces one processor-side representation.
func (pm *PaymentMethod) UpdateGatewayMethod(gatewayID, id string, fn func(gateway.PaymentMethodResource, *PaymentMethod) (gateway.PaymentMethodResource, error)) error {
	old, ok := pm.Gateway.Get(gatewayID, id)
	if !ok {
		return fmt.Errorf("%w: gateway payment method %s/%s", store.ErrNotFound, gatewayID, id)
	}
	resource, err := fn(old, pm)
	if err != nil {
		return err
	}
	if !resource.IsValid() {
		return fmt.Errorf("%w: payment method %s on gateway %s", gateway.ErrInvalidResource, resource.ID, resource.GatewayID)
	}
	return aggregate.Record(pm, AggregateType, gateway.EventPaymentMethodUpdated, gateway.PaymentMethodUpdated{PaymentMethod: resource})
}

// SuspendGatewayMethod invalidates one processor-side representation. The
// root only suspends once no valid representation remains on any gateway.
func (pm *PaymentMethod) SuspendGatewayMethod(gatewayID, id string, fn func(gateway.PaymentMethodResource, *PaymentMethod) (gateway.PaymentMethodResource, error)) error {
	old, ok := pm.Gateway.Get(gatewayID, id)
	if !ok {
		return fmt.Errorf("%w: gateway payment method %s/%s", store.ErrNotFound, gatewayID, id)
	}
	resource, err := fn(old, pm)
	if err != nil {
		return err
	}
	return aggregate.Record(pm, AggregateType, gateway.EventPaymentMethodSuspended, gateway.PaymentMethodSuspended{PaymentMethod: resource})
}

// ApplyEvent applies a single event to the payment method state (implements aggregate.Aggregate)
func (pm *PaymentMethod) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventPaymentMethodCreated:
		var data PaymentMethodCreated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pm.ID = event.AggregateID
		pm.BillingAddress = data.BillingAddress
		pm.Source = data.Source
		pm.ThreeDS = data.ThreeDS
		pm.TokenID = data.TokenID
		pm.Status = StatusPending
	case EventPaymentMethodUpdated:
		var data PaymentMethodUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pm.BillingAddress = data.BillingAddress
	case EventPaymentMethodFailed:
		pm.Status = StatusFailed
	case EventPaymentMethodSuspended:
		pm.Status = StatusSuspended
	case gateway.EventPaymentMethodAdded:
		var data gateway.PaymentMethodAdded
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pm.Gateway.ApplyAdded(data)
		if pm.Status == StatusPending {
			pm.Status = StatusSucceeded
		}
	case gateway.EventPaymentMethodUpdated:
		var data gateway.PaymentMethodUpdated
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pm.Gateway.ApplyUpdated(data)
	case gateway.EventPaymentMethodSuspended:
		var data gateway.PaymentMethodSuspended
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pm.Gateway.ApplySuspended(data)
		if pm.Status == StatusSucceeded && !pm.Gateway.AnyValid() {
			pm.Status = StatusSuspended
		}
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	pm.Version = event.Version
	return nil
}
