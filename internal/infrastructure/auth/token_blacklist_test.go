package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklisted JTI is reported until TTL expires", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		blocked, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("unknown JTI is not blacklisted", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		blocked, err := bl.IsBlacklisted(ctx, "never-seen")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

		blocked, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("user invalidation rejects tokens issued before it", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		issuedBefore := time.Now().Add(-time.Hour)

		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

		invalidated, err := bl.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalidated)

		stillValid, err := bl.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, stillValid)
	})

	t.Run("users without invalidation are unaffected", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		invalidated, err := bl.IsUserTokenInvalidated(ctx, "user-2", time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.False(t, invalidated)
	})
}
