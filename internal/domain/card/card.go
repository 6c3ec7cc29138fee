package card

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrExpired       = errors.New("card is expired")
	ErrInvalidNumber = errors.New("invalid card number")
)

// Encryptor and Decryptor are the collaborator contracts for sensitive card
// fields. The core never stores a plaintext PAN or CVC.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
}

type Decryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// Card is a tokenizable card source: masked number, expiration, holder and
// an encrypted CVC.
type Card struct {
	Number     Number     `json:"number"`
	Expiration Expiration `json:"expiration"`
	Holder     Holder     `json:"holder"`
	CVC        CVC        `json:"cvc"`
}

func (c Card) Expired(now time.Time) bool {
	return c.Expiration.Expired(now)
}

// Expiration is the month/year printed on the card. A card is considered
// expired strictly after the first day of its expiration month plus one
// month of grace.
type Expiration struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

func NewExpiration(month time.Month, year int) Expiration {
	if year < 100 {
		year += 2000
	}
	return Expiration{Month: month, Year: year}
}

func (e Expiration) Time() time.Time {
	return time.Date(e.Year, e.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (e Expiration) Expired(now time.Time) bool {
	return now.After(e.Time().AddDate(0, 1, 0))
}

func (e Expiration) String() string {
	return fmt.Sprintf("%02d%02d", int(e.Month), e.Year%100)
}

// Holder is the cardholder name as embossed.
type Holder struct {
	Name string `json:"name"`
}
