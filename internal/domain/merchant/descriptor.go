package merchant

import (
	"errors"
	"fmt"
)

// Card networks cap soft descriptors at 25 characters.
const maxDescriptorLength = 25

var ErrDescriptorTooLong = errors.New("merchant descriptor exceeds 25 characters")

// Descriptor is the text shown on the cardholder's statement,
// split into a static prefix and a per-charge suffix.
type Descriptor struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

func NewDescriptor(prefix, suffix string) (Descriptor, error) {
	if len(prefix)+len(suffix) > maxDescriptorLength {
		return Descriptor{}, fmt.Errorf("%w: %q%q", ErrDescriptorTooLong, prefix, suffix)
	}
	return Descriptor{Prefix: prefix, Suffix: suffix}, nil
}

func (d Descriptor) String() string {
	return d.Prefix + d.Suffix
}
