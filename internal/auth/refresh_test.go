package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshToken(t *testing.T) {
	tok, err := NewRefreshToken(24 * time.Hour)
	require.NoError(t, err)
	assert.Len(t, tok.Raw, 96) // 48 random bytes, hex encoded
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), tok.ExpiresAt, 2*time.Second)

	other, err := NewRefreshToken(24 * time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, tok.Raw, other.Raw)
}

func TestHashRefreshToken(t *testing.T) {
	h1 := HashRefreshToken("some-raw-token")
	h2 := HashRefreshToken("some-raw-token")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex sha-256
	assert.NotEqual(t, h1, HashRefreshToken("other-token"))
}
