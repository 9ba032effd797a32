package middleware

import "github.com/labstack/echo/v4"

// subject returns the authenticated token subject, or "anon" for requests
// that did not pass through JWTAuth.
func subject(c echo.Context) string {
	if v, ok := c.Get(CtxSubject).(string); ok && v != "" {
		return v
	}
	return "anon"
}
