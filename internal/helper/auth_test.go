package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken("user-001", "citizen@example.com", "citizen")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-001", claims.UserID)
	assert.Equal(t, "citizen@example.com", claims.Email)
	assert.Equal(t, "citizen", claims.Role)
	assert.Greater(t, claims.Expiry, claims.Iat)
}

func TestVerifyTokenAcceptsBearerPrefix(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken("user-001", "citizen@example.com", "citizen")
	require.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-001", claims.UserID)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken("user-001", "citizen@example.com", "citizen")
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := SetupAuth("test-secret")

	for _, tok := range []string{"", "   ", "Bearer ", "not.a.jwt"} {
		_, err := auth.VerifyToken(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestGenerateTokenRequiresIdentity(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.GenerateToken("", "citizen@example.com", "citizen")
	assert.Error(t, err)

	_, err = auth.GenerateToken("user-001", "", "citizen")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("test-secret")

	hashed, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hashed)

	assert.NoError(t, auth.VerifyPassword("admin123", hashed))
	assert.Error(t, auth.VerifyPassword("wrong-pass", hashed))

	_, err = auth.HashPassword("   ")
	assert.Error(t, err)
}
