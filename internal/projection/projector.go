package projection

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/domain/paymentmethod"
	"github.com/example/payment-es/internal/domain/refund"
	"github.com/example/payment-es/internal/domain/subscription"
	"github.com/example/payment-es/internal/infrastructure/store"
	"github.com/example/payment-es/internal/readmodel"
)

// Projector maintains the read models from the event stream. It is driven by
// the Kafka consumer; replays are safe because every handler is an upsert.
type Projector struct {
	readStore store.ReadStoreInterface
}

func NewProjector(readStore store.ReadStoreInterface) *Projector {
	return &Projector{readStore: readStore}
}

func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}

	log.Printf("[Projector] Received event: %s (aggregate: %s)", event.EventType, event.AggregateType)

	switch event.AggregateType {
	case paymentintent.AggregateType:
		return p.handlePaymentIntentEvent(event)
	case paymentmethod.AggregateType:
		return p.handlePaymentMethodEvent(event)
	case subscription.AggregateType:
		return p.handleSubscriptionEvent(event)
	case refund.AggregateType:
		return p.handleRefundEvent(event)
	}

	return nil
}

func (p *Projector) handlePaymentIntentEvent(event store.Event) error {
	switch event.EventType {
	case paymentintent.EventPaymentIntentAuthorized:
		var e paymentintent.PaymentIntentAuthorized
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		status := paymentintent.StatusRequiresPaymentMethod
		if e.TenderID != "" {
			status = paymentintent.StatusRequiresCapture
		}
		p.readStore.Set("payment_intents", event.AggregateID, &readmodel.PaymentIntentReadModel{
			ID:             event.AggregateID,
			Status:         string(status),
			Amount:         e.Money.Amount,
			Currency:       e.Money.Currency,
			Description:    e.Description,
			TenderID:       e.TenderID,
			SubscriptionID: e.SubscriptionID,
			CreatedAt:      event.Timestamp,
			UpdatedAt:      event.Timestamp,
		})

	case paymentintent.EventPaymentIntentCaptured:
		var e paymentintent.PaymentIntentCaptured
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("payment_intents", event.AggregateID, func(current any) any {
			m := current.(*readmodel.PaymentIntentReadModel)
			m.Status = string(paymentintent.StatusSucceeded)
			if e.Money != nil {
				m.Amount = e.Money.Amount
			}
			if e.TenderID != "" {
				m.TenderID = e.TenderID
			}
			m.UpdatedAt = event.Timestamp
			return m
		})

	case paymentintent.EventPaymentIntentCanceled:
		p.readStore.Update("payment_intents", event.AggregateID, func(current any) any {
			m := current.(*readmodel.PaymentIntentReadModel)
			m.Status = string(paymentintent.StatusCanceled)
			m.UpdatedAt = event.Timestamp
			return m
		})

	case paymentintent.EventPaymentIntentDeclined:
		var e paymentintent.PaymentIntentDeclined
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("payment_intents", event.AggregateID, func(current any) any {
			m := current.(*readmodel.PaymentIntentReadModel)
			m.Status = string(paymentintent.StatusDeclined)
			m.DeclineReason = e.Reason
			m.UpdatedAt = event.Timestamp
			return m
		})
	}

	return nil
}

func (p *Projector) handlePaymentMethodEvent(event store.Event) error {
	switch event.EventType {
	case paymentmethod.EventPaymentMethodCreated:
		var e paymentmethod.PaymentMethodCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		m := &readmodel.PaymentMethodReadModel{
			ID:        event.AggregateID,
			Status:    string(paymentmethod.StatusPending),
			Email:     e.BillingAddress.Email,
			CreatedAt: event.Timestamp,
			UpdatedAt: event.Timestamp,
		}
		if e.Source.Card != nil {
			m.Brand = e.Source.Card.Number.Brand
			m.Last4 = e.Source.Card.Number.Last4
		}
		p.readStore.Set("payment_methods", event.AggregateID, m)

	case paymentmethod.EventPaymentMethodUpdated:
		var e paymentmethod.PaymentMethodUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("payment_methods", event.AggregateID, func(current any) any {
			m := current.(*readmodel.PaymentMethodReadModel)
			m.Email = e.BillingAddress.Email
			m.UpdatedAt = event.Timestamp
			return m
		})

	case paymentmethod.EventPaymentMethodFailed:
		p.setPaymentMethodStatus(event, paymentmethod.StatusFailed)

	case paymentmethod.EventPaymentMethodSuspended:
		p.setPaymentMethodStatus(event, paymentmethod.StatusSuspended)

	case gateway.EventPaymentMethodAdded:
		// A gateway confirmation only promotes a pending method, mirroring the
		// aggregate. A method that already failed or got suspended stays put.
		p.readStore.Update("payment_methods", event.AggregateID, func(current any) any {
			m := current.(*readmodel.PaymentMethodReadModel)
			if m.Status == string(paymentmethod.StatusPending) {
				m.Status = string(paymentmethod.StatusSucceeded)
			}
			m.UpdatedAt = event.Timestamp
			return m
		})
	}

	return nil
}

func (p *Projector) setPaymentMethodStatus(event store.Event, status paymentmethod.Status) {
	p.readStore.Update("payment_methods", event.AggregateID, func(current any) any {
		m := current.(*readmodel.PaymentMethodReadModel)
		m.Status = string(status)
		m.UpdatedAt = event.Timestamp
		return m
	})
}

func (p *Projector) handleSubscriptionEvent(event store.Event) error {
	switch event.EventType {
	case subscription.EventSubscriptionCreated:
		var e subscription.SubscriptionCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set("subscriptions", event.AggregateID, &readmodel.SubscriptionReadModel{
			ID:              event.AggregateID,
			PlanID:          e.PlanID,
			PaymentMethodID: e.PaymentMethodID,
			Amount:          e.PlanMoney.Amount,
			Currency:        e.PlanMoney.Currency,
			CreatedAt:       e.CreatedAt,
			UpdatedAt:       event.Timestamp,
		})

	case subscription.EventSubscriptionPaid:
		var e subscription.SubscriptionPaid
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("subscriptions", event.AggregateID, func(current any) any {
			m := current.(*readmodel.SubscriptionReadModel)
			m.PaymentsCount++
			m.LastPaidAt = e.When
			m.UpdatedAt = event.Timestamp
			return m
		})

	case subscription.EventSubscriptionPaymentMethodUpdated:
		var e subscription.SubscriptionPaymentMethodUpdated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Update("subscriptions", event.AggregateID, func(current any) any {
			m := current.(*readmodel.SubscriptionReadModel)
			m.PaymentMethodID = e.PaymentMethodID
			m.UpdatedAt = event.Timestamp
			return m
		})

	case subscription.EventSubscriptionCanceled:
		p.readStore.Update("subscriptions", event.AggregateID, func(current any) any {
			m := current.(*readmodel.SubscriptionReadModel)
			m.Canceled = true
			m.UpdatedAt = event.Timestamp
			return m
		})
	}

	return nil
}

func (p *Projector) handleRefundEvent(event store.Event) error {
	switch event.EventType {
	case refund.EventRefundCreated:
		var e refund.RefundCreated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		p.readStore.Set("refunds", event.AggregateID, &readmodel.RefundReadModel{
			ID:              event.AggregateID,
			PaymentIntentID: e.PaymentIntentID,
			Status:          string(refund.StatusCreated),
			Amount:          e.Money.Amount,
			Currency:        e.Money.Currency,
			CreatedAt:       event.Timestamp,
			UpdatedAt:       event.Timestamp,
		})

	case refund.EventRefundDeclined:
		p.setRefundStatus(event, refund.StatusDeclined)

	case refund.EventRefundCanceled, gateway.EventRefundCanceled:
		p.setRefundStatus(event, refund.StatusCanceled)

	case gateway.EventRefundCreated:
		p.setRefundStatus(event, refund.StatusSucceeded)
	}

	return nil
}

func (p *Projector) setRefundStatus(event store.Event, status refund.Status) {
	p.readStore.Update("refunds", event.AggregateID, func(current any) any {
		m := current.(*readmodel.RefundReadModel)
		m.Status = string(status)
		m.UpdatedAt = event.Timestamp
		return m
	})
}
