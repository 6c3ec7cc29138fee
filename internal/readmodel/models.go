package readmodel

import "time"

// Read models maintained by the projector from the event stream. They are
// denormalized for queries and carry no behavior.

type PaymentIntentReadModel struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Description    string    `json:"description,omitempty"`
	TenderID       string    `json:"tender_id,omitempty"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	DeclineReason  string    `json:"decline_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SubscriptionReadModel struct {
	ID              string    `json:"id"`
	PlanID          string    `json:"plan_id"`
	PaymentMethodID string    `json:"payment_method_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	PaymentsCount   int       `json:"payments_count"`
	LastPaidAt      time.Time `json:"last_paid_at,omitempty"`
	Canceled        bool      `json:"canceled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaymentMethodReadModel struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Email     string    `json:"email,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Last4     string    `json:"last4,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefundReadModel struct {
	ID              string    `json:"id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Status          string    `json:"status"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
