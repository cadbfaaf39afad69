package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-register/pkg/apperrors"
)

func newTestJWTService() JWTService {
	return NewJWTService("test-secret", time.Minute, time.Hour, zap.NewNop())
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService()

	access, refresh, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.UserID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), refreshClaims.UserID)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	access, _, err := newTestJWTService().GenerateTokens(42)
	require.NoError(t, err)

	other := NewJWTService("another-secret", time.Minute, time.Hour, zap.NewNop())
	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	expired := NewJWTService("test-secret", -time.Minute, -time.Minute, zap.NewNop())
	access, _, err := expired.GenerateTokens(42)
	require.NoError(t, err)

	_, err = expired.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
