package card

import (
	"fmt"
	"regexp"
)

type brandPattern struct {
	name    string
	pattern *regexp.Regexp
}

// Ordered: more specific prefixes are matched before catch-alls
// (visaelectron before visa, mir/unionpay before maestro would not matter
// since first match wins top-down).
var brandPatterns = []brandPattern{
	{"amex", regexp.MustCompile(`^3[47][0-9]`)},
	{"dankort", regexp.MustCompile(`^5019`)},
	{"dinersclub", regexp.MustCompile(`^3(0[0-5]|[68][0-9])[0-9]`)},
	{"discover", regexp.MustCompile(`^6(011|22126|22925|4[4-9]|5)`)},
	{"forbrugsforeningen", regexp.MustCompile(`^600`)},
	{"hipercard", regexp.MustCompile(`^(606282\d{10}(\d{3})?)|(3841\d{15})`)},
	{"jcb", regexp.MustCompile(`^(2131|1800|35\d{3})`)},
	{"mir", regexp.MustCompile(`^220`)},
	{"visaelectron", regexp.MustCompile(`^4(026|17500|405|508|844|91[37])`)},
	{"maestro", regexp.MustCompile(`^(5(018|0[235]|[678])|6(1|39|7|8|9))`)},
	{"mastercard", regexp.MustCompile(`^(5[0-5]|2(2(2[1-9]|[3-9])|[3-6]|7(0|1|20)))`)},
	{"unionpay", regexp.MustCompile(`^62`)},
	{"visa", regexp.MustCompile(`^4`)},
}

// Number keeps only the masked parts of a PAN in the clear; the full number
// is stored encrypted and is only recoverable through a Decryptor.
type Number struct {
	First6    string `json:"first6"`
	Last4     string `json:"last4"`
	Brand     string `json:"brand"`
	Encrypted string `json:"encrypted,omitempty"`
}

// NumberFromPAN masks and encrypts a full card number.
func NumberFromPAN(pan string, enc Encryptor) (Number, error) {
	if len(pan) < 10 {
		return Number{}, fmt.Errorf("%w: too short", ErrInvalidNumber)
	}
	brand, err := findBrand(pan)
	if err != nil {
		return Number{}, err
	}
	ciphertext, err := enc.Encrypt(pan)
	if err != nil {
		return Number{}, err
	}
	return Number{
		First6:    pan[:6],
		Last4:     pan[len(pan)-4:],
		Brand:     brand,
		Encrypted: ciphertext,
	}, nil
}

func findBrand(pan string) (string, error) {
	for _, bp := range brandPatterns {
		if bp.pattern.MatchString(pan) {
			return bp.name, nil
		}
	}
	return "", fmt.Errorf("%w: unknown brand", ErrInvalidNumber)
}

// PAN decrypts the full card number, or returns "" if it was never stored.
func (n Number) PAN(dec Decryptor) (string, error) {
	if n.Encrypted == "" {
		return "", nil
	}
	return dec.Decrypt(n.Encrypted)
}

func (n Number) Masked() string {
	return n.First6 + "..." + n.Last4
}

// CVC holds only ciphertext; it never round-trips through JSON in the clear.
type CVC struct {
	Encrypted string `json:"encrypted,omitempty"`
}

func CVCFrom(cvc string, enc Encryptor) (CVC, error) {
	ciphertext, err := enc.Encrypt(cvc)
	if err != nil {
		return CVC{}, err
	}
	return CVC{Encrypted: ciphertext}, nil
}

func (c CVC) Value(dec Decryptor) (string, error) {
	if c.Encrypted == "" {
		return "", nil
	}
	return dec.Decrypt(c.Encrypted)
}
