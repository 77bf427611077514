package middleware

import "github.com/labstack/echo/v4"

// GuestOnly restricts a caching middleware to unauthenticated requests.
// The availability response embeds per-student booked flags, so cached
// bodies must never be shared across bearer tokens; authenticated
// traffic bypasses the cache entirely.
func GuestOnly(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        cached := mw(next)
        return func(c echo.Context) error {
            if c.Request().Header.Get("Authorization") != "" {
                return next(c)
            }
            return cached(c)
        }
    }
}
