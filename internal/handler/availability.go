package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/session-booking/internal/booking"
    "github.com/iliyamo/session-booking/internal/model"
    "github.com/iliyamo/session-booking/internal/repository"
)

// AvailabilityHandler serves the read-only projection of the weekly
// grid.  The projection is recomputed from the catalog and ledger on
// every request and is advisory display data only; booking decisions
// are always made against a fresh in-transaction snapshot, never
// against this view.
type AvailabilityHandler struct {
    Bookings *repository.BookingRepo
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(bookings *repository.BookingRepo) *AvailabilityHandler {
    if bookings == nil {
        panic("nil repository passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{Bookings: bookings}
}

// GetAvailability handles GET /v1/sessions.  Guests see the grid with
// capacity-derived availability; authenticated students additionally
// get is_booked per session and is_day_booked per day.  An optional
// ?day= query parameter narrows the view to a single day.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
    day := strings.ToUpper(strings.TrimSpace(c.QueryParam("day")))
    if day != "" && !model.IsValidDay(day) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day"})
    }

    ctx := c.Request().Context()
    states, err := h.Bookings.SessionStates(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sessions"})
    }
    if day != "" {
        filtered := make([]booking.SessionState, 0, len(states))
        for _, s := range states {
            if s.Day == model.Day(day) {
                filtered = append(filtered, s)
            }
        }
        states = filtered
    }

    var viewerBookings []booking.StudentBooking
    if studentID, err := getStudentID(c); err == nil {
        viewerBookings, err = h.Bookings.StudentBookings(ctx, studentID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
        }
    }

    view := booking.Project(states, viewerBookings)
    if day != "" {
        days := make([]booking.DayView, 0, 1)
        for _, d := range view.Days {
            if d.Day == model.Day(day) {
                days = append(days, d)
            }
        }
        view.Days = days
    }
    return c.JSON(http.StatusOK, view)
}
