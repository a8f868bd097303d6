package validator

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Validator is implemented by requests that check their own fields after unmarshalling.
type Validator interface {
	Validate() error
}

// Validate validates type v.
func Validate(v Validator) error {
	return v.Validate()
}

// FieldRequiredError is returned when a mandatory request field is empty.
type FieldRequiredError struct {
	Field string
}

func (e FieldRequiredError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidDenomError is returned when a request field is not a valid denom.
type InvalidDenomError struct {
	Field string
	Denom string
	Err   error
}

func (e InvalidDenomError) Error() string {
	return fmt.Sprintf("invalid %s (%s): %v", e.Field, e.Denom, e.Err)
}

func (e InvalidDenomError) Unwrap() error {
	return e.Err
}

// Required returns FieldRequiredError for the first empty value.
// Arguments alternate between field name and value.
func Required(fieldsAndValues ...string) error {
	for i := 0; i+1 < len(fieldsAndValues); i += 2 {
		if fieldsAndValues[i+1] == "" {
			return FieldRequiredError{Field: fieldsAndValues[i]}
		}
	}
	return nil
}

// Denom checks denom against the cosmos-sdk denom format.
func Denom(field, denom string) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return InvalidDenomError{Field: field, Denom: denom, Err: err}
	}
	return nil
}
