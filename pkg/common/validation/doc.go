// Package validation provides common validation utilities for the
// ring-buffer library. Validators return a *ValidationError from
// pkg/common/errors so callers can surface consistent, hint-carrying
// messages for construction mistakes.
package validation
