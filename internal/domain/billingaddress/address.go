package billingaddress

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Address is the billing address value carried by payment methods and
// billing-address aggregates.
type Address struct {
	FirstName        string `json:"first_name" validate:"required"`
	LastName         string `json:"last_name" validate:"required"`
	City             string `json:"city" validate:"required"`
	Country          string `json:"country" validate:"required,iso3166_1_alpha2"`
	PostalCode       string `json:"postal_code" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,e164"`
	AddressLine      string `json:"address_line" validate:"required"`
	AddressLineExtra string `json:"address_line_extra,omitempty"`
	State            string `json:"state,omitempty"`
}

// Validate checks field formats: ISO 3166-1 country, RFC e-mail, E.164 phone.
func (a Address) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid billing address: %w", err)
	}
	return nil
}

// Patch is a partial update; nil fields leave the stored value unchanged.
type Patch struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	City             *string `json:"city,omitempty"`
	Country          *string `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
	PostalCode       *string `json:"postal_code,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,e164"`
	AddressLine      *string `json:"address_line,omitempty"`
	AddressLineExtra *string `json:"address_line_extra,omitempty"`
	State            *string `json:"state,omitempty"`
}

func (p Patch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid billing address patch: %w", err)
	}
	return nil
}

// Merge returns the address with every non-nil patch field replaced.
func (a Address) Merge(p Patch) Address {
	merged := a
	if p.FirstName != nil {
		merged.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		merged.LastName = *p.LastName
	}
	if p.City != nil {
		merged.City = *p.City
	}
	if p.Country != nil {
		merged.Country = *p.Country
	}
	if p.PostalCode != nil {
		merged.PostalCode = *p.PostalCode
	}
	if p.Email != nil {
		merged.Email = *p.Email
	}
	if p.Phone != nil {
		merged.Phone = *p.Phone
	}
	if p.AddressLine != nil {
		merged.AddressLine = *p.AddressLine
	}
	if p.AddressLineExtra != nil {
		merged.AddressLineExtra = *p.AddressLineExtra
	}
	if p.State != nil {
		merged.State = *p.State
	}
	return merged
}
