package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyRoundtrip(t *testing.T) {
	hash, err := HashPassword("rahasia123", DefaultParams())
	require.NoError(t, err)

	ok, err := VerifyPassword("rahasia123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("salah", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	_, err := HashPassword("", DefaultParams())
	assert.Error(t, err)
}
