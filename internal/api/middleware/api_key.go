package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
)

const apiKeyHeader = "X-API-Key"

// APIKeyAuth guards a route group with a static admin key, accepted either
// via the X-API-Key header or as a bearer token.
func APIKeyAuth(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return echo.ErrUnauthorized
			}

			provided := c.Request().Header.Get(apiKeyHeader)
			if provided == "" {
				auth := c.Request().Header.Get(echo.HeaderAuthorization)
				if strings.HasPrefix(auth, "Bearer ") {
					provided = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				return echo.ErrUnauthorized
			}

			return next(c)
		}
	}
}
