package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsWrapsUnknownErrors(t *testing.T) {
	raw := errors.New("pq: connection reset")
	appErr := As(raw)
	if appErr.Code != CodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", appErr.Code)
	}
	if appErr.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", appErr.HTTPStatus)
	}
	if !errors.Is(appErr, raw) {
		t.Error("wrapped error should unwrap to the original")
	}
}

func TestAsPreservesAppErrorsThroughWrapping(t *testing.T) {
	conflict := Conflict("seat is already booked for this shift")
	wrapped := fmt.Errorf("create booking: %w", conflict)

	appErr := As(wrapped)
	if appErr.Code != CodeConflict {
		t.Errorf("expected CONFLICT through wrapping, got %s", appErr.Code)
	}
	if !IsCode(wrapped, CodeConflict) {
		t.Error("IsCode should see through wrapping")
	}
	if IsCode(wrapped, CodeNotFound) {
		t.Error("IsCode should not match a different code")
	}
}

func TestConstructorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("booking"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"invalid state", InvalidState("terminal"), CodeInvalidState, http.StatusUnprocessableEntity},
		{"validation", Validation("bad input"), CodeValidation, http.StatusBadRequest},
		{"registry unreachable", RegistryUnreachable(errors.New("refused")), CodeRegistryUnreachable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
		})
	}
}
