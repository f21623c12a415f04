package auth

import (
	"testing"

	"websewa_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, secret string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = 5
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = nil })
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(t, "test-secret")

	token, err := GenerateToken("user-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseToken_RejectsInvalid(t *testing.T) {
	setTestConfig(t, "test-secret")

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err := GenerateToken("user-1", "user")
	require.NoError(t, err)

	// Signed with a different secret.
	config.AppConfig.JWT.Secret = "other-secret"
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipal_IsAdmin(t *testing.T) {
	assert.True(t, Principal{UserID: "u", Role: "admin"}.IsAdmin())
	assert.False(t, Principal{UserID: "u", Role: "user"}.IsAdmin())
	assert.False(t, Principal{}.IsAdmin())
}
