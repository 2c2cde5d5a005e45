package convocatoria

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
)

func window(opensIn, closesIn time.Duration) (time.Time, time.Time) {
	now := time.Now()
	return now.Add(opensIn), now.Add(closesIn)
}

func TestNew(t *testing.T) {
	opens, closes := window(-time.Hour, time.Hour)
	c := New(id.New(), "June intake", opens, closes)

	assert.Equal(t, StatusScheduled, c.Status)
	assert.Len(t, c.Token, 32)
	require.NoError(t, c.Validate(context.Background()))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	opens, closes := window(0, time.Hour)

	noTitle := New(id.New(), "", opens, closes)
	assert.Error(t, noTitle.Validate(ctx))

	inverted := New(id.New(), "t", closes, opens)
	assert.Error(t, inverted.Validate(ctx))

	negativeSeats := New(id.New(), "t", opens, closes)
	negativeSeats.Seats = -1
	assert.Error(t, negativeSeats.Validate(ctx))
}

func TestAcceptsApplications(t *testing.T) {
	now := time.Now()

	t.Run("inside window", func(t *testing.T) {
		opens, closes := window(-time.Hour, time.Hour)
		c := New(id.New(), "t", opens, closes)
		assert.NoError(t, c.AcceptsApplications(now))
	})

	t.Run("before window", func(t *testing.T) {
		opens, closes := window(time.Hour, 2*time.Hour)
		c := New(id.New(), "t", opens, closes)
		assertIntakeClosed(t, c.AcceptsApplications(now))
	})

	t.Run("after window", func(t *testing.T) {
		opens, closes := window(-2*time.Hour, -time.Hour)
		c := New(id.New(), "t", opens, closes)
		assertIntakeClosed(t, c.AcceptsApplications(now))
	})

	t.Run("explicitly closed", func(t *testing.T) {
		opens, closes := window(-time.Hour, time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.Status = StatusClosed
		assertIntakeClosed(t, c.AcceptsApplications(now))
	})

	t.Run("seats exhausted", func(t *testing.T) {
		opens, closes := window(-time.Hour, time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.Seats = 3
		c.SeatsFilled = 3
		assertIntakeClosed(t, c.AcceptsApplications(now))
	})

	t.Run("zero seats means uncapped", func(t *testing.T) {
		opens, closes := window(-time.Hour, time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.SeatsFilled = 500
		assert.NoError(t, c.AcceptsApplications(now))
	})
}

func TestSyncStatus(t *testing.T) {
	now := time.Now()

	t.Run("scheduled before opening", func(t *testing.T) {
		opens, closes := window(time.Hour, 2*time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.SyncStatus(now)
		assert.Equal(t, StatusScheduled, c.Status)
	})

	t.Run("open inside window", func(t *testing.T) {
		opens, closes := window(-time.Hour, time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.SyncStatus(now)
		assert.Equal(t, StatusOpen, c.Status)
	})

	t.Run("closed after window", func(t *testing.T) {
		opens, closes := window(-2*time.Hour, -time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.SyncStatus(now)
		assert.Equal(t, StatusClosed, c.Status)
	})

	t.Run("closed when full", func(t *testing.T) {
		opens, closes := window(-time.Hour, time.Hour)
		c := New(id.New(), "t", opens, closes)
		c.Seats = 1
		c.FillSeat()
		c.SyncStatus(now)
		assert.Equal(t, StatusClosed, c.Status)
	})
}

func assertIntakeClosed(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeIntakeClosed, appErr.Code)
}
