package handler

import (
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/session-booking/internal/booking"
    "github.com/iliyamo/session-booking/internal/repository"
)

func TestWriteBookingErrorStatusMapping(t *testing.T) {
    tests := []struct {
        name       string
        err        error
        wantStatus int
        wantCode   string
    }{
        {"session not found", booking.Deny(booking.ReasonSessionNotFound), http.StatusNotFound, "SESSION_NOT_FOUND"},
        {"session disabled", booking.Deny(booking.ReasonSessionDisabled), http.StatusConflict, "SESSION_DISABLED"},
        {"session full", booking.Deny(booking.ReasonSessionFull), http.StatusConflict, "SESSION_FULL"},
        {"day already booked", booking.Deny(booking.ReasonDayAlreadyBooked), http.StatusConflict, "DAY_ALREADY_BOOKED"},
        {"max days reached", booking.Deny(booking.ReasonMaxDaysReached), http.StatusConflict, "MAX_DAYS_REACHED"},
        {"duplicate booking", booking.Deny(booking.ReasonDuplicateBooking), http.StatusConflict, "DUPLICATE_BOOKING"},
        {"cancel target missing", booking.Deny(booking.ReasonNotFoundOrUnauthorized), http.StatusNotFound, "NOT_FOUND_OR_UNAUTHORIZED"},
        {"lost race", booking.Deny(booking.ReasonConcurrencyConflict), http.StatusConflict, "CONCURRENCY_CONFLICT"},
        {"transient storage", repository.ErrTransient, http.StatusServiceUnavailable, "TRANSIENT"},
        {"wrapped transient", fmt.Errorf("commit: %w", repository.ErrTransient), http.StatusServiceUnavailable, "TRANSIENT"},
        {"unknown failure", errors.New("connection reset"), http.StatusInternalServerError, ""},
    }
    e := echo.New()
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
            rec := httptest.NewRecorder()
            if err := writeBookingError(e.NewContext(req, rec), tc.err); err != nil {
                t.Fatalf("writeBookingError: %v", err)
            }
            if rec.Code != tc.wantStatus {
                t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
            }
            if tc.wantCode == "" {
                return
            }
            var body struct {
                ErrorCode string `json:"error_code"`
                Message   string `json:"message"`
            }
            if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
                t.Fatalf("decode body: %v", err)
            }
            if body.ErrorCode != tc.wantCode {
                t.Fatalf("expected error_code %q, got %q", tc.wantCode, body.ErrorCode)
            }
            if body.Message == "" {
                t.Fatalf("expected a human-readable message alongside %s", tc.wantCode)
            }
        })
    }
}

func TestGetStudentID(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

    if _, err := getStudentID(c); err == nil {
        t.Fatalf("expected error when user_id is absent")
    }
    c.Set("user_id", "DR-0001-25")
    id, err := getStudentID(c)
    if err != nil || id != "DR-0001-25" {
        t.Fatalf("expected DR-0001-25, got %q (%v)", id, err)
    }
}
