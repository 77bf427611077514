package handler // handler defines http handlers

import (
    "errors"   // errors provides As/Is helpers for error mapping
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/session-booking/internal/booking"
    "github.com/iliyamo/session-booking/internal/repository"
)

// getStudentID extracts the authenticated student's external ID from the
// echo context.  JWTAuth stores the token subject under "user_id".
func getStudentID(c echo.Context) (string, error) {
    v := c.Get("user_id")
    if s, ok := v.(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("invalid user_id in context")
}

// denialStatus maps a denial reason to its HTTP status code.  Missing
// resources map to 404; every rule violation and lost race maps to 409
// so clients can distinguish "gone" from "not allowed right now".
func denialStatus(r booking.Reason) int {
    switch r {
    case booking.ReasonSessionNotFound, booking.ReasonNotFoundOrUnauthorized:
        return http.StatusNotFound
    default:
        return http.StatusConflict
    }
}

// denialMessage returns the short human-readable text for a reason.
// Clients should key on error_code; the message is a convenience.
func denialMessage(r booking.Reason) string {
    switch r {
    case booking.ReasonSessionNotFound:
        return "session not found"
    case booking.ReasonSessionDisabled:
        return "session is not open for booking"
    case booking.ReasonSessionFull:
        return "session has no spots left"
    case booking.ReasonDayAlreadyBooked:
        return "you already have a session booked on this day"
    case booking.ReasonMaxDaysReached:
        return "you have reached your booked-days limit"
    case booking.ReasonDuplicateBooking:
        return "you already booked this session"
    case booking.ReasonNotFoundOrUnauthorized:
        return "booking not found"
    case booking.ReasonConcurrencyConflict:
        return "the last spot was just taken; refresh and try again"
    }
    return "request refused"
}

// writeBookingError renders a booking-flow error.  Denials become their
// mapped status with a machine-readable error_code; transient storage
// failures become 503 (safe to retry); anything else is a 500.
func writeBookingError(c echo.Context, err error) error {
    var d *booking.Denial
    if errors.As(err, &d) {
        return c.JSON(denialStatus(d.Reason), echo.Map{
            "error_code": d.Reason,
            "message":    denialMessage(d.Reason),
        })
    }
    if errors.Is(err, repository.ErrTransient) {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{
            "error_code": "TRANSIENT",
            "message":    "temporary storage error, please retry",
        })
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
