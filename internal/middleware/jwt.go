// Package middleware contains the access guard applied to every protected
// route.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edgarsv/passvault/internal/utils"
)

// identityKey is the context key under which the verified subject id is
// stored for the remainder of the request.
const identityKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer token and
// establishes the caller's identity for the request scope. Every failure
// mode (missing header, malformed header, bad signature, expiry) produces
// the same 401 response; the guard never explains which check failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			subject, err := utils.ParseToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			c.Set(identityKey, subject)
			return next(c)
		}
	}
}

// Identity returns the authenticated user id established by JWTAuth. The
// second result is false when the guard did not run for this request.
func Identity(c echo.Context) (string, bool) {
	s, ok := c.Get(identityKey).(string)
	return s, ok && s != ""
}
