// Package validator provides a thin wrapper around the go-playground/validator
// library, enabling declarative struct validation with standardized error
// formatting.
//
// Beyond the built-in rules it registers an "algoaddr" tag that accepts only
// well-formed Algorand addresses, so configuration and request structs can
// validate addresses declaratively. The package is initialized automatically
// and safe to use directly.
package validator

import (
	"errors"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"
	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is returned as the first error in a multi-error chain when validation fails.
//
// This sentinel error allows callers to detect validation failures explicitly,
// even when multiple field errors are returned.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is a singleton instance of the go-playground validator,
// initialized automatically on package load.
var validator *gvalidator.Validate

// errStringFormat defines the template used to describe individual validation errors.
//
// Example: "'Sender': value 'XYZ' does not meet the requirements for the 'algoaddr' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// isAlgorandAddress reports whether the field holds a checksummed base32
// Algorand address.
func isAlgorandAddress(fl gvalidator.FieldLevel) bool {
	_, err := types.DecodeAddress(fl.Field().String())
	return err == nil
}

// init initializes the singleton validator instance automatically on package
// import and registers the custom "algoaddr" rule.
func init() {
	validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

	if err := validator.RegisterValidation("algoaddr", isAlgorandAddress); err != nil {
		panic(err)
	}
}

// formatError transforms a raw validator error into a structured, human-readable multi-error chain.
//
// If the input is a set of validation errors, it returns a combined error with ErrValidationFailed as the root,
// followed by a formatted message for each field error. Otherwise, the original error is returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		err := fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		)

		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks if the given struct satisfies its validation tags.
//
// It returns nil if all fields pass validation. Otherwise, it returns a combined error that includes
// ErrValidationFailed and one formatted message for each field that failed validation.
//
// Example usage:
//
//	type Input struct {
//	    Receiver string `validate:"required,algoaddr"`
//	}
//
//	if err := validator.Validate(input); errors.Is(err, validator.ErrValidationFailed) {
//	    // Handle validation failure
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
