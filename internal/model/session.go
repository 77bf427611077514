package model

import "time"

// Session represents one bookable (day, time slot) cell of the weekly
// grid.  Sessions are seeded once at startup and never deleted; the
// instructor may change the capacity or toggle the enabled flag.
//
// Fields:
//  ID        – primary key identifier.
//  Day       – day of week the session runs on.
//  TimeSlot  – two-hour window within the day.
//  Capacity  – maximum number of bookings this session accepts.
//  Enabled   – whether students may book the session.  Disabling a
//              session does not remove existing bookings.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
//
// Invariant: at most one Session exists per (Day, TimeSlot) pair,
// enforced by a unique key in the sessions table.
type Session struct {
    ID        uint64    // sessions.id
    Day       Day       // sessions.day
    TimeSlot  TimeSlot  // sessions.time_slot
    Capacity  uint32    // sessions.capacity
    Enabled   bool      // sessions.enabled
    CreatedAt time.Time // sessions.created_at
    UpdatedAt time.Time // sessions.updated_at
}
