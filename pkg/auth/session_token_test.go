package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokens(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)

	t.Run("Should round trip session ID", func(t *testing.T) {
		signed, err := tokens.Issue("session-1")
		require.NoError(t, err)

		id, err := tokens.Parse(signed)
		require.NoError(t, err)
		assert.Equal(t, "session-1", id)
	})

	t.Run("Should reject token signed with another secret", func(t *testing.T) {
		other := NewSessionTokens("other", time.Hour)
		signed, err := other.Issue("session-1")
		require.NoError(t, err)

		_, err = tokens.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject expired token", func(t *testing.T) {
		signed, err := tokens.Issue("session-1")
		require.NoError(t, err)

		later := NewSessionTokens("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Parse(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
