package booking

import "github.com/iliyamo/session-booking/internal/model"

// SessionState is the point-in-time view of one session used for
// validation and projection: the catalog row plus the current number of
// bookings referencing it.
type SessionState struct {
    ID           uint64         // session identifier
    Day          model.Day      // day of week
    TimeSlot     model.TimeSlot // time slot within the day
    Capacity     uint32         // maximum bookings
    Enabled      bool           // whether booking is open
    BookingCount uint32         // bookings currently referencing the session
}

// StudentBooking is the slice of ledger state relevant to per-student
// rules: which sessions (and therefore days) the student already holds.
type StudentBooking struct {
    BookingID string         // booking identifier
    SessionID uint64         // booked session
    Day       model.Day      // day of the booked session
    TimeSlot  model.TimeSlot // slot of the booked session
}

// Snapshot bundles the state a single validation decision needs.  The
// caller must read it inside the same transaction as any mutation the
// decision gates; validating against stale state reintroduces the race
// the transaction exists to prevent.
type Snapshot struct {
    // Session is the target session's current state, or nil when no such
    // session exists.
    Session *SessionState
    // StudentBookings are all bookings the student currently holds.
    StudentBookings []StudentBooking
}

// ValidateBooking decides whether a student may book the snapshot's
// session.  It returns nil to allow, or a Denial carrying the first
// failing check's reason.  Checks run in a fixed order so the reported
// reason is deterministic:
//
//  1. session exists and is enabled
//  2. session has spots left
//  3. student holds no booking on the same day
//  4. student is under the maxDays cap
//  5. student does not already hold this exact session
//
// maxDays is the configured per-student cap on booked days.
func ValidateBooking(snap Snapshot, maxDays int) *Denial {
    sess := snap.Session
    if sess == nil {
        return Deny(ReasonSessionNotFound)
    }
    if !sess.Enabled {
        return Deny(ReasonSessionDisabled)
    }
    if sess.BookingCount >= sess.Capacity {
        return Deny(ReasonSessionFull)
    }
    for _, b := range snap.StudentBookings {
        if b.Day == sess.Day {
            return Deny(ReasonDayAlreadyBooked)
        }
    }
    if len(snap.StudentBookings) >= maxDays {
        return Deny(ReasonMaxDaysReached)
    }
    for _, b := range snap.StudentBookings {
        if b.SessionID == sess.ID {
            return Deny(ReasonDuplicateBooking)
        }
    }
    return nil
}

// ValidateCancellation decides whether a student may cancel the given
// booking.  The only rule is ownership: the booking must exist in the
// student's own booking list.  No capacity or day checks apply.
func ValidateCancellation(bookingID string, studentBookings []StudentBooking) *Denial {
    for _, b := range studentBookings {
        if b.BookingID == bookingID {
            return nil
        }
    }
    return Deny(ReasonNotFoundOrUnauthorized)
}
