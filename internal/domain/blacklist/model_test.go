package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ana.Lopez@Example.COM", "ana.lopez@example.com"},
		{"  padded@example.com  ", "padded@example.com"},
		{"12 345 678-Z", "12345678-z"},
		{"A\tB\nC", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNew_NormalizesIdentifier(t *testing.T) {
	e := New(KindEmail, "  Ana@Example.com ", "repeat no-show")

	assert.Equal(t, "ana@example.com", e.Identifier)
	assert.Equal(t, KindEmail, e.Kind)
	require.NoError(t, e.Validate(context.Background()))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	badKind := New(IdentifierKind("passport"), "x", "")
	assert.Error(t, badKind.Validate(ctx))

	empty := New(KindNationalID, "   ", "")
	assert.Error(t, empty.Validate(ctx))
}

func TestInEffect(t *testing.T) {
	now := time.Now()

	permanent := New(KindEmail, "a@b.c", "")
	assert.True(t, permanent.InEffect(now))

	future := now.Add(time.Hour)
	temporary := New(KindEmail, "a@b.c", "")
	temporary.ExpiresAt = &future
	assert.True(t, temporary.InEffect(now))

	past := now.Add(-time.Hour)
	lapsed := New(KindEmail, "a@b.c", "")
	lapsed.ExpiresAt = &past
	assert.False(t, lapsed.InEffect(now))
}
