// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// Queue names for booking lifecycle events.
const (
    BookingCreatedQueue   = "booking.created"
    BookingCancelledQueue = "booking.cancelled"
)

// BookingEvent is published when a booking is created or cancelled.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingEvent struct {
    BookingID  string `json:"booking_id"`
    StudentID  string `json:"student_id"`
    SessionID  uint64 `json:"session_id"`
    Day        string `json:"day"`
    TimeSlot   string `json:"time_slot"`
    OccurredAt string `json:"occurred_at"`
}
