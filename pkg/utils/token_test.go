package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "wastemanage/pkg/errors"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	id := uuid.New()

	token, err := GenerateToken(id, "user@example.com", "user", testSecret, 168)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "user@example.com", "user", testSecret, 168)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "user@example.com", "user", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.True(t, errors.Is(err, appErrors.ErrTokenExpired))
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidToken))
}

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	assert.Equal(t, HashResetToken(first), HashResetToken(first))
	assert.NotEqual(t, HashResetToken(first), HashResetToken(second))
}
