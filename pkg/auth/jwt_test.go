package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remy-crypto/dunkuloans-sub000/pkg/auth"
)

func newHMACService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "lending-platform",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newHMACService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{auth.RoleBorrower})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole(auth.RoleBorrower))
	assert.False(t, claims.HasRole(auth.RoleAdmin))
	assert.Equal(t, "lending-platform", claims.Issuer)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newHMACService(t)

	token, err := svc.GenerateToken(uuid.New(), []string{auth.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	issuer, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), []string{auth.RoleAgent})
	require.NoError(t, err)

	svc := newHMACService(t)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := auth.NewJWTService(auth.JWTConfig{})
	assert.Error(t, err)
}

func TestClaims_HasAnyRole(t *testing.T) {
	c := auth.Claims{Roles: []string{auth.RoleAgent, auth.RoleInvestor}}
	assert.True(t, c.HasAnyRole(auth.RoleAdmin, auth.RoleAgent))
	assert.False(t, c.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin))
}
