package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFormErrors_FieldDict(t *testing.T) {
	err := newAPIError(400, map[string]any{
		"email":      []any{"email is required", "email is invalid"},
		"first_name": "first_name is required",
	})

	got := ExtractFormErrors(err)

	assert.Equal(t, []string{"email is required", "email is invalid"}, got.Fields["email"])
	assert.Equal(t, []string{"first_name is required"}, got.Fields["first_name"])
	assert.Empty(t, got.Root)
	assert.True(t, got.HasErrors())
}

func TestExtractFormErrors_StructuredDetails(t *testing.T) {
	// The server's {code, message, details} envelope: details is the
	// field dict.
	err := newAPIError(400, map[string]any{
		"code":    "VALIDATION_ERROR",
		"message": "validation failed",
		"details": map[string]any{
			"email": []any{"email is required"},
		},
	})

	got := ExtractFormErrors(err)

	assert.Equal(t, []string{"email is required"}, got.Fields["email"])
	assert.Empty(t, got.Root)
}

func TestExtractFormErrors_RootKeys(t *testing.T) {
	err := newAPIError(400, map[string]any{
		"non_field_errors": []any{"passwords do not match"},
		"detail":           "submission rejected",
	})

	got := ExtractFormErrors(err)

	assert.Empty(t, got.Fields)
	assert.ElementsMatch(t, []string{"passwords do not match", "submission rejected"}, got.Root)
}

func TestExtractFormErrors_BareArray(t *testing.T) {
	err := newAPIError(400, []any{"first", "second"})

	got := ExtractFormErrors(err)

	assert.Empty(t, got.Fields)
	assert.Equal(t, []string{"first", "second"}, got.Root)
}

func TestExtractFormErrors_BareString(t *testing.T) {
	err := newAPIError(400, "something broke")

	got := ExtractFormErrors(err)

	assert.Equal(t, []string{"something broke"}, got.Root)
}

func TestExtractFormErrors_FallbackToMessage(t *testing.T) {
	err := newAPIError(500, nil)

	got := ExtractFormErrors(err)

	assert.Equal(t, []string{"Internal Server Error"}, got.Root)
}

func TestExtractFormErrors_NonAPIError(t *testing.T) {
	got := ExtractFormErrors(errors.New("connection refused"))

	assert.Equal(t, []string{"connection refused"}, got.Root)
	assert.Empty(t, got.Fields)
}
