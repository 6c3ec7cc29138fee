package gateway

// Gateway event types are recorded into the owning root's stream and applied
// through the root's event dispatch, so root and gateway events share one
// linear order and one version counter.
const (
	EventPaymentIntentAuthorized = "GatewayPaymentIntentAuthorized"
	EventPaymentIntentCaptured   = "GatewayPaymentIntentCaptured"
	EventPaymentIntentCanceled   = "GatewayPaymentIntentCanceled"
	EventPaymentIntentDeclined   = "GatewayPaymentIntentDeclined"

	EventPaymentMethodAdded     = "GatewayPaymentMethodAdded"
	EventPaymentMethodUpdated   = "GatewayPaymentMethodUpdated"
	EventPaymentMethodSuspended = "GatewayPaymentMethodSuspended"

	EventTokenAdded = "GatewayTokenAdded"

	EventRefundCreated  = "GatewayRefundCreated"
	EventRefundCanceled = "GatewayRefundCanceled"
)

type PaymentIntentAuthorized struct {
	PaymentIntent PaymentIntentResource `json:"payment_intent"`
}

type PaymentIntentCaptured struct {
	PaymentIntent PaymentIntentResource `json:"payment_intent"`
}

type PaymentIntentCanceled struct {
	PaymentIntent PaymentIntentResource `json:"payment_intent"`
}

type PaymentIntentDeclined struct {
	PaymentIntent PaymentIntentResource `json:"payment_intent"`
}

type PaymentMethodAdded struct {
	PaymentMethod PaymentMethodResource `json:"payment_method"`
}

type PaymentMethodUpdated struct {
	PaymentMethod PaymentMethodResource `json:"payment_method"`
}

type PaymentMethodSuspended struct {
	PaymentMethod PaymentMethodResource `json:"payment_method"`
}

type TokenAdded struct {
	Token TokenResource `json:"token"`
}

type RefundCreated struct {
	Refund RefundResource `json:"refund"`
}

type RefundCanceled struct {
	Refund RefundResource `json:"refund"`
}
