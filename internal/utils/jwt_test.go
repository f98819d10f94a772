// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWT(42, "alice", "user", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("unit-test-secret")
	token, err := GenerateJWT(42, "alice", "user", 1)
	require.NoError(t, err)

	SetJWTSecret("a-different-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateRefreshToken(7, 1)
	require.NoError(t, err)

	userID, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("garbage")
	assert.Error(t, err)

	_, err = ValidateRefreshToken("garbage")
	assert.Error(t, err)
}
