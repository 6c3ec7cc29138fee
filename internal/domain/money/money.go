package money

import (
	"errors"
	"fmt"
)

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// Money is an exact amount in minor units (cents) of an ISO 4217 currency.
// All comparisons are integer comparisons; there is no floating point here.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func New(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) IsZero() bool     { return m.Amount == 0 }
func (m Money) IsNegative() bool { return m.Amount < 0 }

func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.Amount == other.Amount
}

// LessThan reports whether m < other. Amounts in different currencies are
// never comparable; callers are expected to have validated currency already,
// so a mismatch simply reports false.
func (m Money) LessThan(other Money) bool {
	return m.Currency == other.Currency && m.Amount < other.Amount
}

func (m Money) Subtract(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// WithAmount returns a Money carrying the given amount in m's currency.
func (m Money) WithAmount(amount int64) Money {
	return Money{Amount: amount, Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}
