package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/payment-es/internal/domain/paymentintent"
	"github.com/example/payment-es/internal/domain/refund"
	"github.com/example/payment-es/internal/email"
	"github.com/example/payment-es/internal/infrastructure/store"
	"github.com/example/payment-es/internal/readmodel"
)

// Handler processes events for sending notifications
type Handler struct {
	emailService *email.Service
	readStore    store.ReadStoreInterface
}

func NewHandler(emailSvc *email.Service, readStore store.ReadStoreInterface) *Handler {
	return &Handler{
		emailService: emailSvc,
		readStore:    readStore,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	switch event.EventType {
	case paymentintent.EventPaymentIntentCaptured:
		return h.handlePaymentCaptured(event)
	case refund.EventRefundCreated:
		return h.handleRefundCreated(event)
	}

	return nil
}

func (h *Handler) handlePaymentCaptured(event store.Event) error {
	log.Printf("[Notifier] Processing captured payment intent %s", event.AggregateID)

	intent, ok := h.getPaymentIntent(event.AggregateID)
	if !ok {
		log.Printf("[Notifier] Payment intent not found: %s", event.AggregateID)
		return nil
	}

	method, ok := h.getPaymentMethod(intent.TenderID)
	if !ok || method.Email == "" {
		log.Printf("[Notifier] No email on record for tender %q, skipping receipt", intent.TenderID)
		return nil
	}

	receipt := email.Receipt{
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Description:     intent.Description,
		CardBrand:       method.Brand,
		CardLast4:       method.Last4,
	}
	if err := h.emailService.SendPaymentReceipt(method.Email, receipt); err != nil {
		log.Printf("[Notifier] Failed to send receipt to %s: %v", method.Email, err)
		return err
	}

	log.Printf("[Notifier] Payment receipt sent to %s for intent %s", method.Email, intent.ID)
	return nil
}

func (h *Handler) handleRefundCreated(event store.Event) error {
	var e refund.RefundCreated
	if err := json.Unmarshal(event.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal RefundCreated event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing refund %s for intent %s", event.AggregateID, e.PaymentIntentID)

	intent, ok := h.getPaymentIntent(e.PaymentIntentID)
	if !ok {
		log.Printf("[Notifier] Payment intent not found: %s", e.PaymentIntentID)
		return nil
	}

	method, ok := h.getPaymentMethod(intent.TenderID)
	if !ok || method.Email == "" {
		log.Printf("[Notifier] No email on record for tender %q, skipping refund notice", intent.TenderID)
		return nil
	}

	notice := email.RefundNotice{
		RefundID:        event.AggregateID,
		PaymentIntentID: e.PaymentIntentID,
		Amount:          e.Money.Amount,
		Currency:        e.Money.Currency,
	}
	if err := h.emailService.SendRefundNotice(method.Email, notice); err != nil {
		log.Printf("[Notifier] Failed to send refund notice to %s: %v", method.Email, err)
		return err
	}

	log.Printf("[Notifier] Refund notice sent to %s for refund %s", method.Email, event.AggregateID)
	return nil
}

func (h *Handler) getPaymentIntent(id string) (*readmodel.PaymentIntentReadModel, bool) {
	data, ok := h.readStore.Get("payment_intents", id)
	if !ok {
		return nil, false
	}
	m, ok := data.(*readmodel.PaymentIntentReadModel)
	return m, ok
}

func (h *Handler) getPaymentMethod(id string) (*readmodel.PaymentMethodReadModel, bool) {
	if id == "" {
		return nil, false
	}
	data, ok := h.readStore.Get("payment_methods", id)
	if !ok {
		return nil, false
	}
	m, ok := data.(*readmodel.PaymentMethodReadModel)
	return m, ok
}
