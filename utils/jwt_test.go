package utils

import (
	"testing"

	"splitledger-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Load()

	userID := uuid.New()
	token, err := GenerateToken(userID, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	config.Load()

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	_, err = ParseToken("")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	config.Load()

	token, err := GenerateToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}
