package middleware

import (
	"crypto/hmac"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// APIKeyConfig holds API key middleware configuration. An empty Key disables
// authentication entirely, which is the local-development default.
type APIKeyConfig struct {
	Key string
}

// APIKeyMiddleware creates a Fiber middleware that validates the configured
// API key and injects the caller name into the request context.
func APIKeyMiddleware(cfg APIKeyConfig) fiber.Handler {
	return func(c fiber.Ctx) error {
		if cfg.Key == "" {
			c.Locals("caller", "local")
			return c.Next()
		}

		var key string

		// Try Authorization header first
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				key = parts[1]
			}
		}

		// Fallbacks: X-API-Key header, then ?api_key= query param
		// (for SSE/EventSource which can't set headers)
		if key == "" {
			key = c.Get("X-API-Key")
		}
		if key == "" {
			key = c.Query("api_key")
		}

		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing api key",
			})
		}

		if !hmac.Equal([]byte(key), []byte(cfg.Key)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid api key",
			})
		}

		c.Locals("caller", "api-key")
		return c.Next()
	}
}

// GetCaller extracts the caller name from Fiber locals. Returns "anonymous"
// for requests that never passed the API key middleware.
func GetCaller(c fiber.Ctx) string {
	caller, ok := c.Locals("caller").(string)
	if !ok {
		return "anonymous"
	}
	return caller
}
