package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("Summer drive")

	assert.Equal(t, StatusDraft, c.Status)
	assert.Equal(t, 1, c.Version)
	require.NoError(t, c.Validate(context.Background()))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	unnamed := New("")
	assert.Error(t, unnamed.Validate(ctx))

	badStatus := New("x")
	badStatus.Status = Status("archived")
	assert.Error(t, badStatus.Validate(ctx))

	start := time.Now()
	end := start.Add(-time.Hour)
	inverted := New("x")
	inverted.StartDate = &start
	inverted.EndDate = &end
	assert.Error(t, inverted.Validate(ctx))
}

func TestIsActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("draft never active", func(t *testing.T) {
		c := New("x")
		assert.False(t, c.IsActive(now))
	})

	t.Run("closed never active", func(t *testing.T) {
		c := New("x")
		c.Status = StatusClosed
		assert.False(t, c.IsActive(now))
	})

	t.Run("active without window", func(t *testing.T) {
		c := New("x")
		c.Status = StatusActive
		assert.True(t, c.IsActive(now))
	})

	t.Run("before start", func(t *testing.T) {
		c := New("x")
		c.Status = StatusActive
		c.StartDate = &future
		assert.False(t, c.IsActive(now))
	})

	t.Run("after end", func(t *testing.T) {
		c := New("x")
		c.Status = StatusActive
		c.EndDate = &past
		assert.False(t, c.IsActive(now))
	})

	t.Run("inside window", func(t *testing.T) {
		c := New("x")
		c.Status = StatusActive
		c.StartDate = &past
		c.EndDate = &future
		assert.True(t, c.IsActive(now))
	})
}
