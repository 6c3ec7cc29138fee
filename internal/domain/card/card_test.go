package card

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reverseCipher is a trivially reversible Encryptor/Decryptor for tests.
type reverseCipher struct{}

func (reverseCipher) Encrypt(plaintext string) (string, error) {
	return reverse(plaintext), nil
}

func (reverseCipher) Decrypt(ciphertext string) (string, error) {
	return reverse(ciphertext), nil
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ============================================
// Expiration Tests
// ============================================

func TestExpiration_Expired(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		month   time.Month
		year    int
		expired bool
	}{
		{"thirteen months ago", time.May, 2025, true},
		{"two months ago is past the grace", time.April, 2026, true},
		{"previous month is within the grace", time.May, 2026, false},
		{"current month", time.June, 2026, false},
		{"next month", time.July, 2026, false},
		{"next year", time.June, 2027, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := NewExpiration(tt.month, tt.year)
			assert.Equal(t, tt.expired, exp.Expired(now))
		})
	}
}

func TestNewExpiration_TwoDigitYear(t *testing.T) {
	exp := NewExpiration(time.March, 28)
	assert.Equal(t, 2028, exp.Year)
	assert.Equal(t, "0328", exp.String())
}

// ============================================
// Number Tests
// ============================================

func TestNumberFromPAN_Brands(t *testing.T) {
	tests := []struct {
		pan   string
		brand string
	}{
		{"4242424242424242", "visa"},
		{"4026000000000002", "visaelectron"},
		{"5555555555554444", "mastercard"},
		{"2223000048400011", "mastercard"},
		{"378282246310005", "amex"},
		{"36227206271667", "dinersclub"},
		{"6011111111111117", "discover"},
		{"3530111333300000", "jcb"},
		{"6200000000000005", "unionpay"},
		{"2200000000000004", "mir"},
	}

	for _, tt := range tests {
		t.Run(tt.brand, func(t *testing.T) {
			n, err := NumberFromPAN(tt.pan, reverseCipher{})
			require.NoError(t, err)
			assert.Equal(t, tt.brand, n.Brand)
			assert.Equal(t, tt.pan[:6], n.First6)
			assert.Equal(t, tt.pan[len(tt.pan)-4:], n.Last4)
		})
	}
}

func TestNumberFromPAN_TooShort(t *testing.T) {
	_, err := NumberFromPAN("411111", reverseCipher{})
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestNumberFromPAN_UnknownBrand(t *testing.T) {
	_, err := NumberFromPAN("9999999999999999", reverseCipher{})
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestNumber_NeverStoresPlaintext(t *testing.T) {
	pan := "4242424242424242"
	n, err := NumberFromPAN(pan, reverseCipher{})
	require.NoError(t, err)

	assert.NotEqual(t, pan, n.Encrypted)
	assert.False(t, strings.Contains(n.Masked(), pan))
	assert.Equal(t, "424242...4242", n.Masked())

	decrypted, err := n.PAN(reverseCipher{})
	require.NoError(t, err)
	assert.Equal(t, pan, decrypted)
}

func TestCVC_RoundTrip(t *testing.T) {
	cvc, err := CVCFrom("123", reverseCipher{})
	require.NoError(t, err)
	assert.NotEqual(t, "123", cvc.Encrypted)

	value, err := cvc.Value(reverseCipher{})
	require.NoError(t, err)
	assert.Equal(t, "123", value)
}

func TestCard_Expired(t *testing.T) {
	now := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

	c := Card{Expiration: NewExpiration(time.January, 2025)}
	assert.True(t, c.Expired(now))

	c = Card{Expiration: NewExpiration(time.July, 2026)}
	assert.False(t, c.Expired(now))
}
