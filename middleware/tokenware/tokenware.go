// Package tokenware is the request pipeline access gate: it locates the
// bearer token, verifies it, and attaches the decoded claims to the
// request. RequireRole layers role based access control on top and must
// run after New.
package tokenware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

var defaultTokenLookup = "header:" + fiber.HeaderAuthorization

// ErrMissingToken is returned when no extractor produced a token.
var ErrMissingToken = errors.New("Not authorized, no token", errors.CategoryAuth).
	WithTextCode("auth_token_missing").
	WithCode(errors.CodeUnauthorized)

// TokenValidator mirrors the TokenService.Validate method from the
// adminauth package without creating an import cycle.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims mirrors the claims surface the gate needs.
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	HasRole(role string) bool
}

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// ErrorHandler translates gate failures into responses. The default
	// never forwards validator error detail to the client.
	ErrorHandler func(*fiber.Ctx, error) error
	// ContextKey is the locals key the decoded claims are stored under
	ContextKey string
	// TokenLookup is a comma separated list of "<source>:<name>" entries
	// checked in order, e.g. "header:Authorization,cookie:token"
	TokenLookup string
	// AuthScheme is the expected header scheme, "Bearer" by default
	AuthScheme string
	// TokenValidator is required for token validation
	TokenValidator TokenValidator
	// Logger receives verification failure detail that is withheld from clients
	Logger Logger
}

// New returns the token verification stage. It fails closed: no token is
// 401, a validator configuration fault is 500, and any verification
// failure is a generic 401 with the detail logged server side.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	extractors := GetExtractors(cfg.TokenLookup, cfg.AuthScheme)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := ExtractRawToken(c, extractors)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("token validation failed", "error", err)
			}
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return c.Next()
	}
}

// RequireRole enforces that verified claims carry the exact role. It is a
// pure predicate over data the verification stage attached; running it
// without that stage is a pipeline ordering violation and yields 401.
func RequireRole(contextKey, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c, contextKey)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized",
			})
		}

		if !claims.HasRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": fmt.Sprintf("Forbidden: %s access required", role),
			})
		}

		return c.Next()
	}
}

// ClaimsFromContext retrieves the claims the verification stage stored.
func ClaimsFromContext(c *fiber.Ctx, contextKey string) (AuthClaims, bool) {
	if contextKey == "" {
		contextKey = "token"
	}
	raw := c.Locals(contextKey)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: token middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "token"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrMissingToken) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": ErrMissingToken.Message,
		})
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Category == errors.CategoryInternal {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server misconfiguration",
		})
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Not authorized, token failed or expired",
	})
}

// ExtractRawToken runs the extractor chain and returns the first match.
func ExtractRawToken(c *fiber.Ctx, extractors []TokenExtractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	if raw == "" {
		return "", ErrMissingToken
	}

	return raw, nil
}

// GetExtractors parses a token lookup expression into an extractor chain.
// Entries are checked in declaration order.
func GetExtractors(tokenLookup string, authSchemes ...string) []TokenExtractor {
	extractors := make([]TokenExtractor, 0)

	authScheme := "Bearer"
	if len(authSchemes) > 0 {
		authScheme = authSchemes[0]
	}

	// header:Authorization,cookie:token,query:token
	rootParts := strings.Split(tokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) != 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, tokenFromHeader(parts[1], authScheme))
		case "cookie":
			extractors = append(extractors, tokenFromCookie(parts[1]))
		case "query":
			extractors = append(extractors, tokenFromQuery(parts[1]))
		}
	}

	return extractors
}

type TokenExtractor func(c *fiber.Ctx) (string, error)

// tokenFromHeader returns a function that extracts the token from the request header.
func tokenFromHeader(header string, authScheme string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		l := len(authScheme)
		if l == 0 {
			return "", ErrMissingToken
		}
		authScheme = strings.TrimSpace(authScheme)
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrMissingToken
	}
}

// tokenFromCookie returns a function that extracts the token from the named cookie.
func tokenFromCookie(name string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// tokenFromQuery returns a function that extracts the token from the query string.
func tokenFromQuery(param string) TokenExtractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}
