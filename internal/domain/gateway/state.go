package gateway

// Sub-aggregate states embedded in the owning roots. Apply methods are pure
// state transitions invoked from the root's ApplyEvent dispatch.

// IntentState tracks the single processor-side record of a payment intent.
type IntentState struct {
	PaymentIntent *PaymentIntentResource `json:"payment_intent,omitempty"`
}

func (s *IntentState) ApplyAuthorized(e PaymentIntentAuthorized) {
	resource := e.PaymentIntent
	s.PaymentIntent = &resource
}

func (s *IntentState) ApplyCaptured(e PaymentIntentCaptured) {
	resource := e.PaymentIntent
	s.PaymentIntent = &resource
}

func (s *IntentState) ApplyCanceled(e PaymentIntentCanceled) {
	resource := e.PaymentIntent
	s.PaymentIntent = &resource
}

func (s *IntentState) ApplyDeclined(e PaymentIntentDeclined) {
	resource := e.PaymentIntent
	s.PaymentIntent = &resource
}

// MethodsState tracks every processor-level representation of one logical
// payment method, keyed by gateway id then resource id.
type MethodsState struct {
	PaymentMethods map[string]map[string]PaymentMethodResource `json:"payment_methods,omitempty"`
}

func (s *MethodsState) put(r PaymentMethodResource) {
	if s.PaymentMethods == nil {
		s.PaymentMethods = make(map[string]map[string]PaymentMethodResource)
	}
	if s.PaymentMethods[r.GatewayID] == nil {
		s.PaymentMethods[r.GatewayID] = make(map[string]PaymentMethodResource)
	}
	s.PaymentMethods[r.GatewayID][r.ID] = r
}

func (s *MethodsState) ApplyAdded(e PaymentMethodAdded)         { s.put(e.PaymentMethod) }
func (s *MethodsState) ApplyUpdated(e PaymentMethodUpdated)     { s.put(e.PaymentMethod) }
func (s *MethodsState) ApplySuspended(e PaymentMethodSuspended) { s.put(e.PaymentMethod) }

// Get returns the resource for a gateway id and resource id.
func (s *MethodsState) Get(gatewayID, id string) (PaymentMethodResource, bool) {
	r, ok := s.PaymentMethods[gatewayID][id]
	return r, ok
}

// Find returns the first resource matching the predicate, or nil.
func (s *MethodsState) Find(match func(PaymentMethodResource) bool) *PaymentMethodResource {
	for _, byID := range s.PaymentMethods {
		for _, r := range byID {
			if match(r) {
				return &r
			}
		}
	}
	return nil
}

// AnyValid reports whether at least one processor-level representation is
// still usable. Root-level suspension is the AND over all of them.
func (s *MethodsState) AnyValid() bool {
	return s.Find(func(r PaymentMethodResource) bool { return r.Valid }) != nil
}

// TokensState tracks processor-side tokens keyed by gateway id then token id.
type TokensState struct {
	Tokens map[string]map[string]TokenResource `json:"tokens,omitempty"`
}

func (s *TokensState) ApplyAdded(e TokenAdded) {
	if s.Tokens == nil {
		s.Tokens = make(map[string]map[string]TokenResource)
	}
	if s.Tokens[e.Token.GatewayID] == nil {
		s.Tokens[e.Token.GatewayID] = make(map[string]TokenResource)
	}
	s.Tokens[e.Token.GatewayID][e.Token.ID] = e.Token
}

// Find returns the first token matching the predicate, or nil.
func (s *TokensState) Find(match func(TokenResource) bool) *TokenResource {
	for _, byID := range s.Tokens {
		for _, r := range byID {
			if match(r) {
				return &r
			}
		}
	}
	return nil
}

// RefundState tracks the single processor-side record of a refund.
type RefundState struct {
	Refund *RefundResource `json:"refund,omitempty"`
}

func (s *RefundState) ApplyCreated(e RefundCreated) {
	resource := e.Refund
	s.Refund = &resource
}

func (s *RefundState) ApplyCanceled(e RefundCanceled) {
	resource := e.Refund
	s.Refund = &resource
}
