package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateAndParseToken - проверяет круговой путь токена
func TestGenerateAndParseToken(t *testing.T) {
	Init("test-secret", time.Hour)

	token, err := GenerateToken("user-123", RoleInstructor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, RoleInstructor, claims.Role)
	assert.Equal(t, "user-123", claims.Subject)
}

// TestParseToken_Invalid - мусорный и чужой токены отклоняются
func TestParseToken_Invalid(t *testing.T) {
	Init("test-secret", time.Hour)

	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// токен, подписанный другим секретом
	Init("other-secret", time.Hour)
	foreign, err := GenerateToken("user-123", RoleStudent)
	require.NoError(t, err)

	Init("test-secret", time.Hour)
	_, err = ParseToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// TestParseToken_Expired - просроченный токен отклоняется
func TestParseToken_Expired(t *testing.T) {
	Init("test-secret", -time.Minute)

	token, err := GenerateToken("user-123", RoleAdmin)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole(RoleAdmin))
	assert.NoError(t, ValidateRole(RoleInstructor))
	assert.NoError(t, ValidateRole(RoleStudent))
	assert.Error(t, ValidateRole("superuser"))
}
