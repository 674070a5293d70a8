package validation

import (
	rberrors "github.com/LVC1D/ring-buffer/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return rberrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidatePowerOfTwo validates that a value is a power of two (and > 0).
// Returns a ValidationError if it is not.
func ValidatePowerOfTwo(module, field string, value uint64) error {
	if value == 0 || value&(value-1) != 0 {
		return rberrors.NewValidationError(module, field, value, "must be a power of two").
			WithHint("use 1, 2, 4, 8, ...")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return rberrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}
