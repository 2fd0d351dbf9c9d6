package adminauth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamschools/adminauth"
)

func TestAuthenticatorLogin(t *testing.T) {
	identity := TestIdentity{
		id:    "admin-1",
		name:  "Ada Admin",
		email: "ada@example.com",
		role:  adminauth.RoleAdmin,
	}

	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", mockCtx, "ada@example.com", "secret-password").
		Return(identity, nil)

	auther := adminauth.NewAuthenticator(provider, newTestConfig())

	token, err := auther.Login(context.Background(), "ada@example.com", "secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// the issued token must carry the stored account's role
	claims, err := auther.TokenService().Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID())
	assert.Equal(t, "ada@example.com", claims.Email())
	assert.Equal(t, adminauth.RoleAdmin, claims.Role())

	provider.AssertExpectations(t)
}

func TestAuthenticatorLoginInvalidCredentials(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", mockCtx, "ada@example.com", "wrong").
		Return(nil, adminauth.ErrInvalidCredentials)

	auther := adminauth.NewAuthenticator(provider, newTestConfig())

	token, err := auther.Login(context.Background(), "ada@example.com", "wrong")
	assert.Empty(t, token)
	assert.Equal(t, adminauth.ErrInvalidCredentials, err)
}

func TestAuthenticatorLoginNilIdentity(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", mockCtx, "ada@example.com", "secret-password").
		Return(nil, nil)

	auther := adminauth.NewAuthenticator(provider, newTestConfig())

	token, err := auther.Login(context.Background(), "ada@example.com", "secret-password")
	assert.Empty(t, token)
	assert.Equal(t, adminauth.ErrInvalidCredentials, err)
}

func TestAuthenticatorLoginMissingSigningKey(t *testing.T) {
	identity := TestIdentity{id: "admin-1", role: adminauth.RoleAdmin}

	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", mockCtx, "ada@example.com", "secret-password").
		Return(identity, nil)

	cfg := newTestConfig()
	cfg.signingKey = ""

	auther := adminauth.NewAuthenticator(provider, cfg)

	_, err := auther.Login(context.Background(), "ada@example.com", "secret-password")
	assert.ErrorIs(t, err, adminauth.ErrMissingSigningKey)
}
