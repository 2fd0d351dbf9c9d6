package adminauth

import (
	"os"
	"strconv"
	"strings"
)

const (
	defaultTokenExpiration = 24
	defaultContextKey      = "token"
	defaultAuthScheme      = "Bearer"
	defaultPort            = "8081"
	defaultIssuer          = "dreamschools"
)

// EnvConfig is the process wide configuration, read once at startup and
// immutable afterwards. It satisfies the Config interface consumed by the
// auth pipeline.
type EnvConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	ContextKey      string
	AuthScheme      string
	Environment     string
	Port            string
	DSN             string
	AllowedOrigins  []string
	AllowQueryToken bool
}

var _ Config = (*EnvConfig)(nil)

// FromEnv builds the configuration from the process environment.
func FromEnv() *EnvConfig {
	cfg := &EnvConfig{
		SigningKey:      os.Getenv("JWT_SECRET"),
		TokenExpiration: defaultTokenExpiration,
		Issuer:          envOr("JWT_ISSUER", defaultIssuer),
		ContextKey:      defaultContextKey,
		AuthScheme:      defaultAuthScheme,
		Environment:     envOr("APP_ENV", "development"),
		Port:            envOr("PORT", defaultPort),
		DSN:             envOr("DATABASE_DSN", "file::memory:?cache=shared"),
	}

	if hours, err := strconv.Atoi(os.Getenv("TOKEN_EXPIRATION_HOURS")); err == nil && hours > 0 {
		cfg.TokenExpiration = hours
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if v, err := strconv.ParseBool(os.Getenv("ALLOW_QUERY_TOKEN")); err == nil {
		cfg.AllowQueryToken = v
	}

	return cfg
}

// Validate fails fast on deployment faults so they surface at startup
// instead of per request.
func (c *EnvConfig) Validate() error {
	if c.SigningKey == "" {
		return ErrMissingSigningKey
	}
	return nil
}

func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *EnvConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

func (c *EnvConfig) GetContextKey() string {
	return c.ContextKey
}

// GetTokenLookup builds the extractor chain expression. The query
// parameter fallback is for local testing and stays off unless enabled
// explicitly.
func (c *EnvConfig) GetTokenLookup() string {
	lookup := "header:Authorization,cookie:" + c.ContextKey
	if c.AllowQueryToken {
		lookup += ",query:" + c.ContextKey
	}
	return lookup
}

func (c *EnvConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c *EnvConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
