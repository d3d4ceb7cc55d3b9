package middleware

import (
	"strings"

	"campusstay/logger"
	"campusstay/types"
	"campusstay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// IsAuthenticated checks for a valid Bearer token and stores its claims
// under c.Locals("user").
func IsAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Message: "Invalid authorization header format",
					Status:  fiber.StatusUnauthorized,
				})
			}
			token = tokenParts[1]
		} else {
			// Fallback to the access cookie
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Message: "Authorization token missing",
					Status:  fiber.StatusUnauthorized,
				})
			}
		}

		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			logger.Error("JWT verification failed", err)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireAdmin is the capability check for admin-only operations. It must
// run after IsAuthenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
			logger.Warning("Access denied - admin capability required")
			return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
				Message: "Access denied",
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}
