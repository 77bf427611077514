// Package booking holds the pure decision logic of the reservation
// system: the constraint validator that decides whether a booking or
// cancellation may proceed, and the availability projector that derives
// the client-facing view from catalog and ledger state.  Nothing in
// this package touches storage; callers supply point-in-time snapshots
// and are responsible for reading them inside the same transaction as
// any subsequent write.
package booking

// Reason is a machine-readable code explaining why a booking or
// cancellation request was refused.  Codes are surfaced verbatim to
// clients; user-facing message text is a presentation concern.
type Reason string

const (
    // ReasonSessionNotFound – the target session does not exist.
    ReasonSessionNotFound Reason = "SESSION_NOT_FOUND"
    // ReasonSessionDisabled – the session exists but booking is turned off.
    ReasonSessionDisabled Reason = "SESSION_DISABLED"
    // ReasonSessionFull – the session has no spots left.
    ReasonSessionFull Reason = "SESSION_FULL"
    // ReasonDayAlreadyBooked – the student already holds a booking on the
    // target session's day.
    ReasonDayAlreadyBooked Reason = "DAY_ALREADY_BOOKED"
    // ReasonMaxDaysReached – the student has reached the per-student cap
    // on booked days.
    ReasonMaxDaysReached Reason = "MAX_DAYS_REACHED"
    // ReasonDuplicateBooking – the student already holds a booking for
    // this exact session.
    ReasonDuplicateBooking Reason = "DUPLICATE_BOOKING"
    // ReasonNotFoundOrUnauthorized – a cancellation target is missing or
    // belongs to another student.  The two cases are deliberately
    // indistinguishable so booking IDs cannot be probed.
    ReasonNotFoundOrUnauthorized Reason = "NOT_FOUND_OR_UNAUTHORIZED"
    // ReasonConcurrencyConflict – validation passed but the insert lost a
    // race at commit time (storage uniqueness backstop fired).  The
    // caller may re-fetch availability and retry as a fresh action.
    ReasonConcurrencyConflict Reason = "CONCURRENCY_CONFLICT"
)

// Denial is the error returned when a request is refused by the rules
// rather than by a storage fault.  Every denial is side-effect free:
// ledger state is unchanged when one is returned.
type Denial struct {
    Reason Reason
}

// Error implements the error interface.
func (d *Denial) Error() string { return string(d.Reason) }

// Deny returns a Denial carrying the given reason.
func Deny(r Reason) *Denial { return &Denial{Reason: r} }
