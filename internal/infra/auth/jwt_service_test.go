package auth

import (
	"testing"

	"lifelink/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, []string{"user"})
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"user"}, claims.Roles)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTService_RefreshTokenRejectedAsAccess(t *testing.T) {
	svc := newTestJWTService(t)

	_, refresh, err := svc.GenerateTokens(uuid.New(), []string{"user"})
	require.NoError(t, err)

	// Signed with the refresh secret, so it must not pass access validation.
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)
}

func TestJWTService_TamperedTokenRejected(t *testing.T) {
	svc := newTestJWTService(t)

	access, _, err := svc.GenerateTokens(uuid.New(), nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access + "x")
	assert.Error(t, err)
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}
