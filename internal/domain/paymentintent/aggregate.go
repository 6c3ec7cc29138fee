package paymentintent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/aggregate"
	"github.com/example/payment-es/internal/domain/gateway"
	"github.com/example/payment-es/internal/domain/merchant"
	"github.com/example/payment-es/internal/domain/money"
	"github.com/example/payment-es/internal/domain/threeds"
	"github.com/example/payment-es/internal/infrastructure/store"
)

const AggregateType = "PaymentIntent"

type Status string

const (
	StatusRequiresPaymentMethod Status = "requires_payment_method"
	StatusRequiresCapture       Status = "requires_capture"
	StatusSucceeded             Status = "succeeded"
	StatusCanceled              Status = "canceled"
	StatusDeclined              Status = "declined"
)

var (
	ErrCaptureUnavailable    = errors.New("capture unavailable")
	ErrCancelUnavailable     = errors.New("cancel unavailable")
	ErrDeclineUnavailable    = errors.New("decline unavailable")
	ErrPaymentMethodRequired = fmt.Errorf("%w: payment method is required", ErrCaptureUnavailable)
)

// Tender is anything a payment intent can charge against. Both payment
// methods and single-use tokens satisfy it; Use fails when the tender is
// suspended, declined or already consumed.
type Tender interface {
	GetID() string
	IsValid() bool
	Use() error
}

// PaymentIntent passes through at most one capture. Money holds the
// authorized amount until capture, then the captured amount;
// AuthCaptureDiff keeps the partial-capture remainder for accounting.
type PaymentIntent struct {
	aggregate.Root
	Money              money.Money         `json:"money"`
	AuthCaptureDiff    money.Money         `json:"auth_capture_diff"`
	MerchantDescriptor merchant.Descriptor `json:"merchant_descriptor"`
	Description        string              `json:"description,omitempty"`
	TenderID           string              `json:"tender_id,omitempty"`
	ThreeDS            *threeds.Result     `json:"three_ds,omitempty"`
	SubscriptionID     string              `json:"subscription_id,omitempty"`
	Status             Status              `json:"status"`
	DeclineReason      string              `json:"decline_reason,omitempty"`
	Gateway            gateway.IntentState `json:"gateway"`
}

func (pi *PaymentIntent) Is(status Status) bool { return pi.Status == status }

// Capturable reports whether the intent still accepts capture, cancel or
// decline. SUCCEEDED, CANCELED and DECLINED are terminal.
func (pi *PaymentIntent) Capturable() bool {
	return pi.Status == StatusRequiresPaymentMethod || pi.Status == StatusRequiresCapture
}

type AuthorizeCommand struct {
	ID                 string
	Money              money.Money
	Tender             Tender
	MerchantDescriptor merchant.Descriptor
	Description        string
	ThreeDS            *threeds.Result
	SubscriptionID     string
}

// Authorize creates the intent. With a tender it lands in REQUIRES_CAPTURE,
// without one in REQUIRES_PAYMENT_METHOD; the tender is consumed before any
// event is recorded so a bad tender leaves no trace.
func Authorize(cmd AuthorizeCommand) (*PaymentIntent, error) {
	if cmd.Money.IsZero() || cmd.Money.IsNegative() {
		return nil, fmt.Errorf("%w: %s", money.ErrInvalidAmount, cmd.Money)
	}

	var tenderID string
	if cmd.Tender != nil {
		if err := cmd.Tender.Use(); err != nil {
			return nil, err
		}
		tenderID = cmd.Tender.GetID()
	}

	pi := &PaymentIntent{}
	pi.ID = cmd.ID
	event := PaymentIntentAuthorized{
		Money:              cmd.Money,
		MerchantDescriptor: cmd.MerchantDescriptor,
		Description:        cmd.Description,
		TenderID:           tenderID,
		ThreeDS:            cmd.ThreeDS,
		SubscriptionID:     cmd.SubscriptionID,
	}
	if err := aggregate.Record(pi, AggregateType, EventPaymentIntentAuthorized, event); err != nil {
		return nil, err
	}
	return pi, nil
}

// Capture settles the intent for the requested amount, or the full
// authorized amount when none is given. An intent authorized without a
// tender needs one supplied here.
func (pi *PaymentIntent) Capture(amount *money.Money, tender Tender) error {
	if !pi.Capturable() {
		return fmt.Errorf("%w: status %s", ErrCaptureUnavailable, pi.Status)
	}

	resolved := pi.Money
	if amount != nil {
		resolved = *amount
	}
	if resolved.IsZero() || resolved.IsNegative() {
		return fmt.Errorf("%w: %s", money.ErrInvalidAmount, resolved)
	}
	if resolved.Currency != pi.Money.Currency {
		return fmt.Errorf("%w: %s vs %s", money.ErrCurrencyMismatch, resolved.Currency, pi.Money.Currency)
	}
	if pi.Money.LessThan(resolved) {
		return fmt.Errorf("%w: capture %s exceeds authorized %s", money.ErrInvalidAmount, resolved, pi.Money)
	}

	var tenderID string
	if pi.Status == StatusRequiresPaymentMethod {
		if tender == nil {
			return fmt.Errorf("%w for intent %s", ErrPaymentMethodRequired, pi.ID)
		}
		if err := tender.Use(); err != nil {
			return err
		}
		tenderID = tender.GetID()
	}

	return aggregate.Record(pi, AggregateType, EventPaymentIntentCaptured, PaymentIntentCaptured{
		Money:    amount,
		TenderID: tenderID,
	})
}

func (pi *PaymentIntent) Cancel() error {
	if !pi.Capturable() {
		return fmt.Errorf("%w: status %s", ErrCancelUnavailable, pi.Status)
	}
	return aggregate.Record(pi, AggregateType, EventPaymentIntentCanceled, PaymentIntentCanceled{})
}

func (pi *PaymentIntent) Decline(reason string) error {
	if !pi.Capturable() {
		return fmt.Errorf("%w: status %s", ErrDeclineUnavailable, pi.Status)
	}
	return aggregate.Record(pi, AggregateType, EventPaymentIntentDeclined, PaymentIntentDeclined{Reason: reason})
}

// AddGatewayIntent records the processor-side authorization returned by the
// callback.
func (pi *PaymentIntent) AddGatewayIntent(fn func(*PaymentIntent) (gateway.PaymentIntentResource, error)) error {
	resource, err := fn(pi)
	if err != nil {
		return err
	}
	if !resource.IsValid() {
		return fmt.Errorf("%w: payment intent %s on gateway %s", gateway.ErrInvalidResource, resource.ID, resource.GatewayID)
	}
	return aggregate.Record(pi, AggregateType, gateway.EventPaymentIntentAuthorized, gateway.PaymentIntentAuthorized{PaymentIntent: resource})
}

func (pi *PaymentIntent) CaptureGateway(fn func(*gateway.PaymentIntentResource, *PaymentIntent) (gateway.PaymentIntentResource, error)) error {
	resource, err := fn(pi.Gateway.PaymentIntent, pi)
	if err != nil {
		return err
	}
	return aggregate.Record(pi, AggregateType, gateway.EventPaymentIntentCaptured, gateway.PaymentIntentCaptured{PaymentIntent: resource})
}

func (pi *PaymentIntent) CancelGateway(fn func(*gateway.PaymentIntentResource, *PaymentIntent) (gateway.PaymentIntentResource, error)) error {
	resource, err := fn(pi.Gateway.PaymentIntent, pi)
	if err != nil {
		return err
	}
	return aggregate.Record(pi, AggregateType, gateway.EventPaymentIntentCanceled, gateway.PaymentIntentCanceled{PaymentIntent: resource})
}

func (pi *PaymentIntent) DeclineGateway(fn func(*gateway.PaymentIntentResource, *PaymentIntent) (gateway.PaymentIntentResource, error)) error {
	resource, err := fn(pi.Gateway.PaymentIntent, pi)
	if err != nil {
		return err
	}
	return aggregate.Record(pi, AggregateType, gateway.EventPaymentIntentDeclined, gateway.PaymentIntentDeclined{PaymentIntent: resource})
}

// ApplyEvent applies a single event to the payment intent state (implements aggregate.Aggregate)
func (pi *PaymentIntent) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventPaymentIntentAuthorized:
		var data PaymentIntentAuthorized
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pi.ID = event.AggregateID
		pi.Money = data.Money
		pi.AuthCaptureDiff = data.Money.WithAmount(0)
		pi.MerchantDescriptor = data.MerchantDescriptor
		pi.Description = data.Description
		pi.TenderID = data.TenderID
		pi.ThreeDS = data.ThreeDS
		pi.SubscriptionID = data.SubscriptionID
		if data.TenderID != "" {
			pi.Status = StatusRequiresCapture
		} else {
			pi.Status = StatusRequiresPaymentMethod
		}
	case EventPaymentIntentCaptured:
		var data PaymentIntentCaptured
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		if data.Money != nil {
			diff, err := pi.Money.Subtract(*data.Money)
			if err != nil {
				return err
			}
			pi.AuthCaptureDiff = diff
			pi.Money = *data.Money
		}
		if data.TenderID != "" {
			pi.TenderID = data.TenderID
		}
		pi.Status = StatusSucceeded
	case EventPaymentIntentCanceled:
		pi.Status = StatusCanceled
	case EventPaymentIntentDeclined:
		var data PaymentIntentDeclined
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pi.Status = StatusDeclined
		pi.DeclineReason = data.Reason
	case gateway.EventPaymentIntentAuthorized:
		var data gateway.PaymentIntentAuthorized
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pi.Gateway.ApplyAuthorized(data)
	case gateway.EventPaymentIntentCaptured:
		var data gateway.PaymentIntentCaptured
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pi.Gateway.ApplyCaptured(data)
	case gateway.EventPaymentIntentCanceled:
		var data gateway.PaymentIntentCanceled
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pi.Gateway.ApplyCanceled(data)
	case gateway.EventPaymentIntentDeclined:
		var data gateway.PaymentIntentDeclined
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		pi.Gateway.ApplyDeclined(data)
	default:
		return fmt.Errorf("unknown event type %q for %s", event.EventType, AggregateType)
	}
	pi.Version = event.Version
	return nil
}
