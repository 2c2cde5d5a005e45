package link

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
)

func TestNew(t *testing.T) {
	campaignID := id.New()
	l := New(campaignID, "job board")

	assert.Equal(t, campaignID, l.CampaignID)
	assert.Equal(t, StatusActive, l.Status)
	assert.Len(t, l.Token, 32)
	require.NoError(t, l.Validate(context.Background()))

	other := New(campaignID, "job board")
	assert.NotEqual(t, l.Token, other.Token)
}

func TestApply_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		action  Action
		want    Status
		wantErr bool
	}{
		{"expire active", StatusActive, ActionExpire, StatusExpired, false},
		{"expire expired", StatusExpired, ActionExpire, "", true},
		{"expire revoked", StatusRevoked, ActionExpire, "", true},
		{"revoke active", StatusActive, ActionRevoke, StatusRevoked, false},
		{"revoke expired", StatusExpired, ActionRevoke, StatusRevoked, false},
		{"revoke revoked", StatusRevoked, ActionRevoke, "", true},
		{"activate expired", StatusExpired, ActionActivate, StatusActive, false},
		{"activate active", StatusActive, ActionActivate, "", true},
		{"activate revoked", StatusRevoked, ActionActivate, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(id.New(), "test")
			l.Status = tt.from

			err := l.Apply(tt.action)
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
				assert.Equal(t, tt.from, l.Status, "failed transition must not change state")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Status)
		})
	}
}

func TestApply_UnknownAction(t *testing.T) {
	l := New(id.New(), "test")
	err := l.Apply(Action("freeze"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("active unlimited", func(t *testing.T) {
		l := New(id.New(), "test")
		assert.NoError(t, l.Usable(now))
	})

	t.Run("not active", func(t *testing.T) {
		l := New(id.New(), "test")
		l.Status = StatusRevoked
		err := l.Usable(now)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeIntakeClosed, appErr.Code)
	})

	t.Run("time expired", func(t *testing.T) {
		l := New(id.New(), "test")
		l.ExpiresAt = &past
		err := l.Usable(now)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeIntakeClosed, appErr.Code)
	})

	t.Run("not yet expired", func(t *testing.T) {
		l := New(id.New(), "test")
		l.ExpiresAt = &future
		assert.NoError(t, l.Usable(now))
	})

	t.Run("use budget exhausted", func(t *testing.T) {
		l := New(id.New(), "test")
		l.MaxUses = 2
		l.UseCount = 2
		err := l.Usable(now)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeLinkExhausted, appErr.Code)
	})

	t.Run("budget remaining", func(t *testing.T) {
		l := New(id.New(), "test")
		l.MaxUses = 2
		l.UseCount = 1
		assert.NoError(t, l.Usable(now))
	})

	t.Run("zero max uses means unlimited", func(t *testing.T) {
		l := New(id.New(), "test")
		l.UseCount = 1000
		assert.NoError(t, l.Usable(now))
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	l := New(id.New(), "test")
	require.NoError(t, l.Validate(ctx))

	missing := New(id.Nil(), "test")
	assert.Error(t, missing.Validate(ctx))

	unnamed := New(id.New(), "")
	assert.Error(t, unnamed.Validate(ctx))

	negative := New(id.New(), "test")
	negative.MaxUses = -1
	assert.Error(t, negative.Validate(ctx))
}
