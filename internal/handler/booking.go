package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/session-booking/internal/queue"
    "github.com/iliyamo/session-booking/internal/repository"
    "github.com/iliyamo/session-booking/internal/service"
)

// BookingHandler exposes the student booking flow.  All methods assume
// JWT authentication and role validation have been performed by
// middleware; they may return 401 when the student ID cannot be
// extracted from the context.  The actual booking and cancellation
// decisions run inside the BookingManager's storage transaction.
type BookingHandler struct {
    Manager  *service.BookingManager
    Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.  Dependencies must be non-nil.
func NewBookingHandler(manager *service.BookingManager, bookings *repository.BookingRepo) *BookingHandler {
    if manager == nil || bookings == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Manager: manager, Bookings: bookings}
}

// CreateBooking handles POST /v1/bookings.  The body carries the target
// session ID.  On success it returns 201 with the new booking; denials
// return their error_code with no state changed.  A booking.created
// event is published after commit; publish failures never fail the
// request.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    studentID, err := getStudentID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        SessionID uint64 `json:"session_id"`
    }
    if err := c.Bind(&body); err != nil || body.SessionID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
    }

    ctx := c.Request().Context()
    b, err := h.Manager.CreateBooking(ctx, studentID, body.SessionID)
    if err != nil {
        return writeBookingError(c, err)
    }

    go func() {
        pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = service.PublishBookingEvent(pctx, queue.BookingCreatedQueue, queue.BookingEvent{
            BookingID:  b.ID,
            StudentID:  b.StudentID,
            SessionID:  b.SessionID,
            Day:        string(b.Day),
            TimeSlot:   string(b.TimeSlot),
            OccurredAt: time.Now().UTC().Format(time.RFC3339),
        })
    }()

    return c.JSON(http.StatusCreated, echo.Map{
        "booking": echo.Map{
            "id":         b.ID,
            "session_id": b.SessionID,
            "day":        b.Day,
            "time_slot":  b.TimeSlot,
            "created_at": b.CreatedAt.UTC().Format(time.RFC3339),
        },
    })
}

// CancelBooking handles DELETE /v1/bookings/:id.  The lookup is scoped
// to the caller, so cancelling a missing booking and cancelling another
// student's booking are indistinguishable (404).  On success the
// deleted booking's grid cell is returned so the client can update its
// view without refetching availability.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
    studentID, err := getStudentID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID := c.Param("id")
    if bookingID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    ctx := c.Request().Context()
    b, err := h.Manager.CancelBooking(ctx, studentID, bookingID)
    if err != nil {
        return writeBookingError(c, err)
    }

    go func() {
        pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = service.PublishBookingEvent(pctx, queue.BookingCancelledQueue, queue.BookingEvent{
            BookingID:  b.ID,
            StudentID:  b.StudentID,
            SessionID:  b.SessionID,
            Day:        string(b.Day),
            TimeSlot:   string(b.TimeSlot),
            OccurredAt: time.Now().UTC().Format(time.RFC3339),
        })
    }()

    return c.JSON(http.StatusOK, echo.Map{
        "deleted_booking": echo.Map{
            "id":         b.ID,
            "session_id": b.SessionID,
            "day":        b.Day,
            "time_slot":  b.TimeSlot,
        },
    })
}

// ListMyBookings handles GET /v1/my-bookings.  It returns the caller's
// bookings, newest first; an empty array when none exist.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
    studentID, err := getStudentID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    items, err := h.Bookings.ListByStudent(ctx, studentID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    out := make([]echo.Map, 0, len(items))
    for _, b := range items {
        out = append(out, echo.Map{
            "id":         b.ID,
            "session_id": b.SessionID,
            "day":        b.Day,
            "time_slot":  b.TimeSlot,
            "created_at": b.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}
