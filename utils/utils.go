package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	userModel "campusstay/models/user"
	"campusstay/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// accessTokenTTL is how long an issued access token stays valid.
const accessTokenTTL = 24 * time.Hour

func accessTokenSecret() []byte {
	return []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
}

// GenerateAccessToken issues a signed HS256 access token for the user.
func GenerateAccessToken(u *userModel.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"email":    u.Email,
		"is_admin": u.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(accessTokenSecret())
}

// ParseAccessToken verifies the token signature and returns its claims.
func ParseAccessToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return accessTokenSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid JWT token")
	}
	return claims, nil
}

// GetUserID extracts the authenticated user's id from the request context.
func GetUserID(c *fiber.Ctx) (uint, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return 0, errors.New("user claims missing from context")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user id not found in token")
	}
	return uint(id), nil
}

// IsAdmin reports whether the authenticated user carries the admin flag.
func IsAdmin(c *fiber.Ctx) bool {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return false
	}
	isAdmin, ok := claims["is_admin"].(bool)
	return ok && isAdmin
}

// CreateSanitizedLogEntry creates a deep copied log entry for async logging.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Deep copies keep the entry safe after fiber recycles the context.
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := string(append([]byte(nil), c.Body()...))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
