package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

func TestGuestOnlySkipsCacheForBearerTokens(t *testing.T) {
    cacheHits := 0
    cache := func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cacheHits++
            return next(c)
        }
    }
    handlerCalls := 0
    wrapped := GuestOnly(cache)(func(c echo.Context) error {
        handlerCalls++
        return c.NoContent(http.StatusOK)
    })
    e := echo.New()

    // A guest request passes through the caching layer.
    req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
    rec := httptest.NewRecorder()
    if err := wrapped(e.NewContext(req, rec)); err != nil {
        t.Fatalf("guest request: %v", err)
    }
    if cacheHits != 1 {
        t.Fatalf("expected guest request to hit the cache layer, hits=%d", cacheHits)
    }

    // An authenticated request must bypass the cache entirely: the
    // response carries per-viewer flags and must never be shared.
    req = httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
    req.Header.Set("Authorization", "Bearer some-token")
    rec = httptest.NewRecorder()
    if err := wrapped(e.NewContext(req, rec)); err != nil {
        t.Fatalf("authenticated request: %v", err)
    }
    if cacheHits != 1 {
        t.Fatalf("authenticated request reached the cache layer, hits=%d", cacheHits)
    }
    if handlerCalls != 2 {
        t.Fatalf("expected both requests to reach the handler, calls=%d", handlerCalls)
    }
}
