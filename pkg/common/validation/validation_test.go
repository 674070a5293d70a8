package validation

import (
	"errors"
	"testing"

	rberrors "github.com/LVC1D/ring-buffer/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive", 4, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("channel", "capacity", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !rberrors.IsValidationError(err) {
				t.Errorf("expected a ValidationError, got %T", err)
			}
		})
	}
}

func TestValidatePowerOfTwo(t *testing.T) {
	tests := []struct {
		name    string
		value   uint64
		wantErr bool
	}{
		{"one", 1, false},
		{"two", 2, false},
		{"four", 4, false},
		{"sixtyfour", 64, false},
		{"large", 1 << 20, false},
		{"zero", 0, true},
		{"three", 3, true},
		{"six", 6, true},
		{"not quite", (1 << 10) - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePowerOfTwo("ring", "capacity", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePowerOfTwo(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, rberrors.ErrInvalidConfiguration) {
				t.Errorf("expected error to match ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("channel", "registry", nil); err == nil {
		t.Error("expected error for nil value")
	}
	if err := ValidateNotNil("channel", "registry", struct{}{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
