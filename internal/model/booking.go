package model

import "time"

// Booking records a student's reservation of a single session.  The ID
// is a UUID generated at creation so booking identifiers are not
// enumerable by clients.  Day and TimeSlot are carried alongside the
// session reference so a cancellation can report which grid cell was
// freed without a second read.
//
// Fields:
//  ID        – UUID primary key.
//  StudentID – external student identifier (students.id).
//  SessionID – session being reserved (sessions.id).
//  Day       – day of the booked session, denormalized into the
//              bookings table to back the one-session-per-day unique
//              key.
//  TimeSlot  – time slot of the booked session (from the sessions join,
//              not stored on the bookings row).
//  CreatedAt – creation timestamp.
//
// A booking is either present (active) or physically deleted; there is
// no soft-delete state.
type Booking struct {
    ID        string    // bookings.id
    StudentID string    // bookings.student_id
    SessionID uint64    // bookings.session_id
    Day       Day       // bookings.day
    TimeSlot  TimeSlot  // sessions.time_slot (joined)
    CreatedAt time.Time // bookings.created_at
}
