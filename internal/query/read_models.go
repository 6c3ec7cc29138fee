package query

// Re-export read models from readmodel package for convenience
import "github.com/example/payment-es/internal/readmodel"

type PaymentIntentReadModel = readmodel.PaymentIntentReadModel
type PaymentMethodReadModel = readmodel.PaymentMethodReadModel
type SubscriptionReadModel = readmodel.SubscriptionReadModel
type RefundReadModel = readmodel.RefundReadModel
