package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDomainError(t *testing.T) {
	if !IsDomainError(ErrUserNotFound, ErrCodeNotFound) {
		t.Error("IsDomainError(ErrUserNotFound, NOT_FOUND) = false")
	}
	if IsDomainError(ErrUserNotFound, ErrCodeConflict) {
		t.Error("IsDomainError(ErrUserNotFound, CONFLICT) = true")
	}
	if IsDomainError(errors.New("plain"), ErrCodeInternal) {
		t.Error("IsDomainError(plain error, INTERNAL) = true")
	}
	if IsDomainError(nil, ErrCodeNotFound) {
		t.Error("IsDomainError(nil, NOT_FOUND) = true")
	}
}

func TestIsDomainError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("fetching task: %w", ErrTaskNotFound)
	if !IsDomainError(wrapped, ErrCodeNotFound) {
		t.Error("IsDomainError should see through fmt.Errorf wrapping")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ErrCodeInternal, "pinging database", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false; want unwrap to reach the cause")
	}
	if got, want := err.Error(), "pinging database: connection refused"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}

func TestBadCredentialsMessage(t *testing.T) {
	// The same message must come back for unknown emails and wrong passwords
	// so login responses cannot confirm whether an account exists.
	if got, want := ErrBadCredentials.Error(), "invalid email or password"; got != want {
		t.Errorf("ErrBadCredentials.Error() = %q; want %q", got, want)
	}
}
