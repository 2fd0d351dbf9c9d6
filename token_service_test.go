package adminauth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamschools/adminauth"
)

func TestTokenServiceGenerateAndValidate(t *testing.T) {
	ts := adminauth.NewTokenService([]byte("test-signing-key"), 24, "test-issuer", nil)

	identity := TestIdentity{
		id:    "admin-1",
		name:  "Ada Admin",
		email: "ada@example.com",
		role:  adminauth.RoleAdmin,
	}

	token, err := ts.Generate(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "admin-1", claims.Subject())
	assert.Equal(t, "admin-1", claims.UserID())
	assert.Equal(t, "Ada Admin", claims.Name())
	assert.Equal(t, "ada@example.com", claims.Email())
	assert.Equal(t, adminauth.RoleAdmin, claims.Role())
	assert.True(t, claims.HasRole(adminauth.RoleAdmin))
	assert.False(t, claims.HasRole(adminauth.RoleTeacher))

	// 24h lifetime within a small tolerance
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.Expires(), time.Minute)
}

func TestTokenServiceValidateExpiry(t *testing.T) {
	ts := adminauth.NewTokenService([]byte("test-signing-key"), 24, "test-issuer", nil)

	sign := func(expiresAt time.Time) string {
		token, err := ts.SignClaims(&adminauth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test-issuer",
				Subject:   "admin-1",
				IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-24 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UID:      "admin-1",
			UserRole: adminauth.RoleAdmin,
		})
		require.NoError(t, err)
		return token
	}

	// still inside the 24h window
	claims, err := ts.Validate(sign(time.Now().Add(time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID())

	// past the 24h window
	_, err = ts.Validate(sign(time.Now().Add(-time.Minute)))
	require.Error(t, err)
	assert.ErrorIs(t, err, adminauth.ErrTokenExpired)
	assert.True(t, adminauth.IsTokenExpiredError(err))
}

func TestTokenServiceValidateRejectsTampering(t *testing.T) {
	ts := adminauth.NewTokenService([]byte("test-signing-key"), 24, "test-issuer", nil)
	other := adminauth.NewTokenService([]byte("another-signing-key"), 24, "test-issuer", nil)

	identity := TestIdentity{id: "admin-1", role: adminauth.RoleAdmin}

	token, err := other.Generate(identity)
	require.NoError(t, err)

	_, err = ts.Validate(token)
	assert.Error(t, err)

	_, err = ts.Validate("not-a-token")
	assert.Error(t, err)
}

func TestTokenServiceMissingSigningKey(t *testing.T) {
	ts := adminauth.NewTokenService(nil, 24, "test-issuer", nil)

	_, err := ts.Generate(TestIdentity{id: "admin-1"})
	assert.ErrorIs(t, err, adminauth.ErrMissingSigningKey)

	_, err = ts.Validate("whatever")
	assert.ErrorIs(t, err, adminauth.ErrMissingSigningKey)
}
