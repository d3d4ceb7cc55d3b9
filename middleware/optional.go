package middleware

import (
	"strings"

	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
)

// OptionalAuth parses a Bearer token or access cookie when one is present,
// but never rejects the request. Public pages use it to personalize
// responses for logged-in callers.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
				token = tokenParts[1]
			}
		} else {
			token = c.Cookies("access")
		}

		if token != "" {
			if claims, err := utils.ParseAccessToken(token); err == nil {
				c.Locals("user", claims)
			}
		}
		return c.Next()
	}
}
