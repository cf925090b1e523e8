package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing token", ErrMissingToken, http.StatusUnauthorized},
		{"revoked token", ErrTokenRevoked, http.StatusUnauthorized},
		{"unknown account", ErrUnknownAccount, http.StatusUnauthorized},
		{"duplicate email", ErrEmailExists, http.StatusConflict},
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped internal", WrapError(ErrInternal, errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestWrapErrorPreservesCodeAndUnwraps(t *testing.T) {
	underlying := errors.New("duplicate key")
	wrapped := WrapError(ErrEmailExists, underlying)

	assert.Equal(t, "EMAIL_EXISTS", wrapped.Code)
	assert.ErrorIs(t, wrapped, underlying)

	var de *DomainError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", wrapped), &de))
	assert.Equal(t, "EMAIL_EXISTS", de.Code)
}

func TestGetErrorMessageHidesInternals(t *testing.T) {
	wrapped := WrapError(ErrInternal, errors.New("password hash leak"))
	assert.Equal(t, "internal server error", GetErrorMessage(wrapped))
}
