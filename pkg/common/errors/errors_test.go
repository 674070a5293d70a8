package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrFull", ErrFull, "buffer is full"},
		{"ErrClosed", ErrClosed, "channel is closed"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "channel",
				Field:  "capacity",
				Value:  3,
				Reason: "must be a power of two",
			},
			want: "channel: invalid capacity=3 (must be a power of two)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "channel",
				Field:  "capacity",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a power of two, e.g. 64",
			},
			want: "channel: invalid capacity=0 (must be positive) - use a power of two, e.g. 64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := &ValidationError{
		Module: "ring",
		Field:  "capacity",
		Value:  6,
		Reason: "must be a power of two",
	}

	if verr.Unwrap() != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", verr.Unwrap())
	}

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("ring", "capacity", 12, "must be a power of two")

	if err.Module != "ring" {
		t.Errorf("Module = %q, want %q", err.Module, "ring")
	}
	if err.Field != "capacity" {
		t.Errorf("Field = %q, want %q", err.Field, "capacity")
	}
	if err.Value != 12 {
		t.Errorf("Value = %v, want %v", err.Value, 12)
	}
	if err.Reason != "must be a power of two" {
		t.Errorf("Reason = %q, want %q", err.Reason, "must be a power of two")
	}
	if err.Hint != "" {
		t.Errorf("Hint = %q, want empty string", err.Hint)
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("channel", "capacity", 0, "must be positive").
		WithHint("use a power of two")

	if err.Hint != "use a power of two" {
		t.Errorf("Hint = %q, want %q", err.Hint, "use a power of two")
	}

	// Should return same instance for chaining
	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "channel",
				Operation: "Send",
				Cause:     errors.New("buffer is full"),
			},
			want: "channel.Send failed: buffer is full",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "channel",
				Operation: "Recv",
				Cause:     errors.New("context canceled"),
				Context:   "while waiting for data",
			},
			want: "channel.Recv failed: context canceled (while waiting for data)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	opErr := NewOperationError("channel", "Send", cause)

	if opErr.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", opErr.Unwrap(), cause)
	}

	if !errors.Is(opErr, cause) {
		t.Error("OperationError should wrap the cause error")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"full error", ErrFull, true},
		{"closed error", ErrClosed, false},
		{"invalid configuration", ErrInvalidConfiguration, false},
		{"random error", errors.New("random"), false},
		{"wrapped full", &OperationError{Cause: ErrFull}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"full error", ErrFull, true},
		{"closed error", ErrClosed, false},
		{"random error", errors.New("random"), false},
		{"wrapped full", &OperationError{Cause: ErrFull}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTemporary(tt.err); got != tt.want {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"validation error",
			NewValidationError("channel", "capacity", 5, "must be a power of two"),
			true,
		},
		{
			"wrapped validation error",
			&OperationError{Cause: NewValidationError("ring", "capacity", 0, "must be positive")},
			true,
		},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"standard error", errors.New("test"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Run("ValidationError message components", func(t *testing.T) {
		err := NewValidationError("channel", "capacity", 42, "must be a power of two").
			WithHint("round up to 64")

		msg := err.Error()

		expectedParts := []string{"channel", "capacity", "42", "must be a power of two", "round up to 64"}
		for _, part := range expectedParts {
			if !strings.Contains(msg, part) {
				t.Errorf("error message should contain %q, got %q", part, msg)
			}
		}
	})

	t.Run("OperationError message components", func(t *testing.T) {
		err := NewOperationError("channel", "Send", errors.New("context deadline exceeded")).
			WithContext("buffer never drained")

		msg := err.Error()

		expectedParts := []string{"channel", "Send", "context deadline exceeded", "buffer never drained"}
		for _, part := range expectedParts {
			if !strings.Contains(msg, part) {
				t.Errorf("error message should contain %q, got %q", part, msg)
			}
		}
	})
}
