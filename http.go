package adminauth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/dreamschools/adminauth/middleware/tokenware"
)

// RouteAuthenticator is the HTTP side of the auth pipeline: it issues and
// clears the session cookie and builds the protected route middleware.
type RouteAuthenticator struct {
	auth           Authenticator
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &RouteAuthenticator{
		cfg:            cfg,
		auth:           auther,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

func (a RouteAuthenticator) GetTokenService() TokenService {
	return a.auth.TokenService()
}

// ProtectedRoute returns the token verification stage configured for this
// deployment. Claims end up in ctx.Locals under the configured context key.
func (a *RouteAuthenticator) ProtectedRoute() fiber.Handler {
	return tokenware.New(tokenware.Config{
		TokenValidator: validatorAdapter{ts: a.auth.TokenService()},
		ContextKey:     a.cfg.GetContextKey(),
		TokenLookup:    a.cfg.GetTokenLookup(),
		AuthScheme:     a.cfg.GetAuthScheme(),
		Logger:         a.Logger,
	})
}

// RequireRole returns the role gate stage for the given role. It must be
// mounted after ProtectedRoute.
func (a *RouteAuthenticator) RequireRole(role UserRole) fiber.Handler {
	return tokenware.RequireRole(a.cfg.GetContextKey(), string(role))
}

// Login verifies credentials and, on success, sets the session cookie.
func (a *RouteAuthenticator) Login(c *fiber.Ctx, identifier, password string) (string, error) {
	token, err := a.auth.Login(c.Context(), identifier, password)
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}

	a.SetTokenCookie(c, token)
	return token, nil
}

// Logout clears the session cookie. A cookie can only be cleared by an
// overwrite with matching attributes, so the profile mirrors issuance.
func (a *RouteAuthenticator) Logout(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * 24),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   a.cfg.IsProduction(),
		SameSite: a.cookieSameSite(),
	})
}

// SetTokenCookie sets the session cookie with an expiry matching the token's.
func (a *RouteAuthenticator) SetTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(a.cookieDuration),
		MaxAge:   int(a.cookieDuration.Seconds()),
		HTTPOnly: true,
		Secure:   a.cfg.IsProduction(),
		SameSite: a.cookieSameSite(),
	})
}

func (a *RouteAuthenticator) cookieSameSite() string {
	if a.cfg.IsProduction() {
		return fiber.CookieSameSiteNoneMode
	}
	return fiber.CookieSameSiteLaxMode
}

type validatorAdapter struct {
	ts TokenService
}

func (v validatorAdapter) Validate(raw string) (tokenware.AuthClaims, error) {
	claims, err := v.ts.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// WriteError translates pipeline failures into client responses. Rich
// errors carry their own status and client safe message; anything else is
// logged and reported as a generic server error.
func WriteError(c *fiber.Ctx, logger Logger, err error) error {
	if logger == nil {
		logger = defLogger{}
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		status := richErr.Code
		if status == 0 {
			status = fiber.StatusInternalServerError
		}

		message := richErr.Message
		if status >= fiber.StatusInternalServerError {
			logger.Error(
				"request failed with server fault",
				"error", err,
				"text_code", richErr.TextCode,
			)
			// internal detail stays server side
			if richErr.TextCode != TextCodeNoSigningKey {
				message = "Server error"
			}
		}

		return c.Status(status).JSON(fiber.Map{"message": message})
	}

	logger.Error("request failed with unexpected error", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
}
