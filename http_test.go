package adminauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamschools/adminauth"
)

func cookieApp(t *testing.T, cfg adminauth.Config, handler func(*adminauth.RouteAuthenticator, *fiber.Ctx) error) *http.Response {
	t.Helper()

	provider := new(MockIdentityProvider)
	auther, err := adminauth.NewHTTPAuthenticator(
		adminauth.NewAuthenticator(provider, cfg),
		cfg,
	)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return handler(auther, c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	return resp
}

func TestSetTokenCookieDevelopmentProfile(t *testing.T) {
	resp := cookieApp(t, newTestConfig(), func(a *adminauth.RouteAuthenticator, c *fiber.Ctx) error {
		a.SetTokenCookie(c, "session-token")
		return c.SendStatus(http.StatusOK)
	})

	cookie := sessionCookie(t, resp)
	assert.Equal(t, "session-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestSetTokenCookieProductionProfile(t *testing.T) {
	cfg := newTestConfig()
	cfg.production = true

	resp := cookieApp(t, cfg, func(a *adminauth.RouteAuthenticator, c *fiber.Ctx) error {
		a.SetTokenCookie(c, "session-token")
		return c.SendStatus(http.StatusOK)
	})

	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

// clearing overwrites with the same attribute profile and a past expiry
func TestLogoutClearsCookie(t *testing.T) {
	resp := cookieApp(t, newTestConfig(), func(a *adminauth.RouteAuthenticator, c *fiber.Ctx) error {
		a.Logout(c)
		return c.SendStatus(http.StatusOK)
	})

	cookie := sessionCookie(t, resp)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.Before(time.Now()))
}

func TestGetCookieDuration(t *testing.T) {
	cfg := newTestConfig()
	cfg.tokenExpiration = 48

	provider := new(MockIdentityProvider)
	auther, err := adminauth.NewHTTPAuthenticator(
		adminauth.NewAuthenticator(provider, cfg),
		cfg,
	)
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, auther.GetCookieDuration())
}
