package adminauth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dreamschools/adminauth"
)

// mockCtx matches any context argument
var mockCtx = mock.Anything

// MockIdentityProvider implements adminauth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (adminauth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(adminauth.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (adminauth.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(adminauth.Identity)
	return identity, args.Error(1)
}

// MockAdminGetter implements adminauth.AdminGetter
type MockAdminGetter struct {
	mock.Mock
}

func (m *MockAdminGetter) GetByEmail(ctx context.Context, email string) (*adminauth.Admin, error) {
	args := m.Called(ctx, email)
	admin, _ := args.Get(0).(*adminauth.Admin)
	return admin, args.Error(1)
}

// TestIdentity is a plain Identity value for tests
type TestIdentity struct {
	id    string
	name  string
	email string
	role  string
}

func (t TestIdentity) ID() string    { return t.id }
func (t TestIdentity) Name() string  { return t.name }
func (t TestIdentity) Email() string { return t.email }
func (t TestIdentity) Role() string  { return t.role }

type testConfig struct {
	signingKey      string
	tokenExpiration int
	production      bool
	allowQueryToken bool
}

func (c testConfig) GetSigningKey() string   { return c.signingKey }
func (c testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c testConfig) GetIssuer() string       { return "test-issuer" }
func (c testConfig) GetContextKey() string   { return "token" }
func (c testConfig) GetTokenLookup() string {
	lookup := "header:Authorization,cookie:token"
	if c.allowQueryToken {
		lookup += ",query:token"
	}
	return lookup
}
func (c testConfig) GetAuthScheme() string { return "Bearer" }
func (c testConfig) IsProduction() bool    { return c.production }

func newTestConfig() testConfig {
	return testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 24,
	}
}
