package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/session-booking/internal/repository"
)

func TestGetAvailabilityRejectsUnknownDay(t *testing.T) {
    // The day filter is validated before any storage access, so a repo
    // with no live database behind it is enough here.
    h := NewAvailabilityHandler(repository.NewBookingRepo(nil))
    e := echo.New()

    for _, raw := range []string{"FUNDAY", "mon", "8"} {
        req := httptest.NewRequest(http.MethodGet, "/v1/sessions?day="+raw, nil)
        rec := httptest.NewRecorder()
        if err := h.GetAvailability(e.NewContext(req, rec)); err != nil {
            t.Fatalf("%q: %v", raw, err)
        }
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("%q: expected 400, got %d", raw, rec.Code)
        }
    }
}
