package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", NewValidationError("Name is required"), http.StatusBadRequest, "Name is required"},
		{"conflict", ErrEmailExists, http.StatusConflict, "Email already exists"},
		{"auth", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"access denied", ErrAccessDenied, http.StatusForbidden, "Access denied"},
		{"not found", ErrAccountNotFound, http.StatusNotFound, "Account not found or access denied"},
		{"wrapped not found", fmt.Errorf("load: %w", ErrCategoryNotFound), http.StatusNotFound, "Category not found or access denied"},
		{"unknown error hides detail", errors.New("dial tcp 10.0.0.1:3306: refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.ToErrorResponse().Error)
		})
	}
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(ErrUserNotFound, KindNotFound))
	assert.True(t, IsKind(fmt.Errorf("wrap: %w", ErrAccessDenied), KindAccessDenied))
	assert.False(t, IsKind(nil, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
