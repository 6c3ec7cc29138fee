// Package source models the funding source behind a payment method:
// cash, a card, or a reference to a processor-side token.
package source

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/payment-es/internal/domain/card"
)

type Type string

const (
	TypeCash  Type = "cash"
	TypeCard  Type = "card"
	TypeToken Type = "token"
)

var ErrUnknownType = errors.New("unknown source type")

// TokenReference points at a token held by an external processor.
type TokenReference struct {
	TokenID    string            `json:"token_id"`
	CustomerID string            `json:"customer_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Source is a tagged union; exactly one of Card/Token is set for the
// matching type, and neither for cash.
type Source struct {
	Type  Type
	Card  *card.Card
	Token *TokenReference
}

func Cash() Source {
	return Source{Type: TypeCash}
}

func FromCard(c card.Card) Source {
	return Source{Type: TypeCard, Card: &c}
}

func FromToken(ref TokenReference) Source {
	return Source{Type: TypeToken, Token: &ref}
}

// Wire format: {"type": "card", "card": {...}}; cash carries no payload.
type sourceJSON struct {
	Type  Type            `json:"type"`
	Card  *card.Card      `json:"card,omitempty"`
	Token *TokenReference `json:"token,omitempty"`
}

func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceJSON{Type: s.Type, Card: s.Card, Token: s.Token})
}

func (s *Source) UnmarshalJSON(data []byte) error {
	var raw sourceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case TypeCash:
		*s = Source{Type: TypeCash}
	case TypeCard:
		*s = Source{Type: TypeCard, Card: raw.Card}
	case TypeToken:
		*s = Source{Type: TypeToken, Token: raw.Token}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, raw.Type)
	}
	return nil
}
