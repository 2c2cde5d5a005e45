package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewValidation("name is required")
	assert.Equal(t, "VALIDATION_ERROR: name is required", err.Error())

	cause := errors.New("boom")
	wrapped := NewInternal(cause)
	assert.Contains(t, wrapped.Error(), "caused by: boom")
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestFactories_StatusAndCode(t *testing.T) {
	tests := []struct {
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{NewValidation("x"), CodeValidation, http.StatusBadRequest},
		{NewNotFound("campaign", "abc"), CodeNotFound, http.StatusNotFound},
		{NewBusinessRule(CodeIntakeClosed, "x"), CodeIntakeClosed, http.StatusUnprocessableEntity},
		{NewInvalidTransition("link", "revoked", "active"), CodeInvalidTransition, http.StatusUnprocessableEntity},
		{NewBlacklisted("a@b.c"), CodeBlacklisted, http.StatusUnprocessableEntity},
		{NewConcurrentModification("campaign", "abc"), CodeConcurrentModification, http.StatusConflict},
		{NewUnauthorized("x"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("x"), CodeForbidden, http.StatusForbidden},
		{NewConflict("x"), CodeConflict, http.StatusConflict},
		{NewSessionExists(), CodeSessionExists, http.StatusConflict},
		{NewDuplicate("user", "email", "a@b.c"), CodeDuplicate, http.StatusConflict},
		{NewInternal(errors.New("x")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("x").WithDetail("field", "name").WithDetail("value", 42)

	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, 42, err.Details["value"])
}

func TestNewFieldErrors(t *testing.T) {
	err := NewFieldErrors(map[string][]string{
		"email": {"email is required"},
	})

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, []string{"email is required"}, err.Details["email"])
}

func TestAsAppError_Wrapped(t *testing.T) {
	inner := NewNotFound("link", "abc")
	wrapped := fmt.Errorf("load link: %w", inner)

	got, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, got.Code)

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(NewNotFound("x", 1)))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestIsConcurrentModification(t *testing.T) {
	assert.True(t, IsConcurrentModification(NewConcurrentModification("campaign", "1")))
	assert.False(t, IsConcurrentModification(NewConflict("x")))
}
