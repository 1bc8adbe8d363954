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

	t.Run("unknown JTI is not blacklisted", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		blacklisted, err := bl.IsBlacklisted(ctx, "unknown-jti")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("added JTI is blacklisted until TTL", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", 1*time.Hour))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("expired entry is forgotten", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("non-positive TTL is a no-op", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-3", 0))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-3")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}
