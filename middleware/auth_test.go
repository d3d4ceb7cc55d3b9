package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	userModel "campusstay/models/user"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	app := fiber.New()
	app.Get("/protected", IsAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/admin", IsAuthenticated(), RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/optional", OptionalAuth(), func(c *fiber.Ctx) error {
		if _, err := utils.GetUserID(c); err == nil {
			return c.SendString("personalized")
		}
		return c.SendString("anonymous")
	})
	return app
}

func tokenFor(t *testing.T, isAdmin bool) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(&userModel.User{
		ID:      7,
		Email:   "user@example.com",
		IsAdmin: isAdmin,
	})
	require.NoError(t, err)
	return token
}

func TestIsAuthenticatedMissingToken(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIsAuthenticatedMalformedHeader(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "token-without-bearer")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIsAuthenticatedValidToken(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, false))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIsAuthenticatedCookieFallback(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access", Value: tokenFor(t, false)})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, false))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, true))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuth(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(body))

	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, false))
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "personalized", string(body))
}
