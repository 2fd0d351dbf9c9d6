package adminauth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreamschools/adminauth"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_EXPIRATION_HOURS", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ALLOW_QUERY_TOKEN", "")

	cfg := adminauth.FromEnv()

	assert.Equal(t, "test-signing-key", cfg.GetSigningKey())
	assert.Equal(t, 24, cfg.GetTokenExpiration())
	assert.Equal(t, "dreamschools", cfg.GetIssuer())
	assert.Equal(t, "token", cfg.GetContextKey())
	assert.Equal(t, "Bearer", cfg.GetAuthScheme())
	assert.Equal(t, "8081", cfg.Port)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AllowedOrigins)

	assert.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")
	t.Setenv("JWT_ISSUER", "myschool")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_EXPIRATION_HOURS", "48")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")

	cfg := adminauth.FromEnv()

	assert.Equal(t, "myschool", cfg.GetIssuer())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 48, cfg.GetTokenExpiration())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{
		"https://app.example.com",
		"https://admin.example.com",
	}, cfg.AllowedOrigins)
}

func TestValidateMissingSigningKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := adminauth.FromEnv()

	assert.ErrorIs(t, cfg.Validate(), adminauth.ErrMissingSigningKey)
}

// query parameter extraction stays off unless enabled explicitly
func TestGetTokenLookup(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")
	t.Setenv("ALLOW_QUERY_TOKEN", "")

	cfg := adminauth.FromEnv()
	assert.Equal(t, "header:Authorization,cookie:token", cfg.GetTokenLookup())

	t.Setenv("ALLOW_QUERY_TOKEN", "true")
	cfg = adminauth.FromEnv()
	assert.Equal(t, "header:Authorization,cookie:token,query:token", cfg.GetTokenLookup())
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"production", true},
		{"PRODUCTION", true},
		{"development", false},
		{"staging", false},
		{"", false},
	}

	for _, tc := range tests {
		cfg := &adminauth.EnvConfig{Environment: tc.env}
		assert.Equal(t, tc.expected, cfg.IsProduction(), "env %q", tc.env)
	}
}
