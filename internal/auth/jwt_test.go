package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestCreateAndVerifyToken(t *testing.T) {
	maker := NewJWTMaker(testSecret)
	userID := uuid.New()

	token, claims, err := maker.CreateToken(userID, "a@b.com", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, userID, claims.UserID)

	parsed, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.UserID)
	assert.Equal(t, "a@b.com", parsed.Email)
}

func TestVerifyExpiredToken(t *testing.T) {
	maker := NewJWTMaker(testSecret)

	token, _, err := maker.CreateToken(uuid.New(), "a@b.com", -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	maker := NewJWTMaker(testSecret)
	token, _, err := maker.CreateToken(uuid.New(), "a@b.com", time.Minute)
	require.NoError(t, err)

	other := NewJWTMaker("ffffffffffffffffffffffffffffffff")
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}
