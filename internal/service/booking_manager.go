// Package service coordinates the transactional booking flow and the
// publication of booking events.
package service

import (
    "context"
    "errors"

    "github.com/google/uuid"

    "github.com/iliyamo/session-booking/internal/booking"
    "github.com/iliyamo/session-booking/internal/model"
    "github.com/iliyamo/session-booking/internal/repository"
)

// BookingManager makes the check-then-act booking sequence atomic.  All
// state needed by the validator is re-read inside the same storage
// transaction that performs the mutation, so two concurrent requests
// can never both observe the last free spot.  Denials abort the
// transaction before any write, which keeps every refusal side-effect
// free.
type BookingManager struct {
    ledger  repository.Ledger
    maxDays int
    newID   func() string
}

// NewBookingManager constructs a BookingManager.  maxDays is the
// configured per-student cap on booked days.
func NewBookingManager(ledger repository.Ledger, maxDays int) *BookingManager {
    if ledger == nil {
        panic("nil ledger passed to NewBookingManager")
    }
    return &BookingManager{ledger: ledger, maxDays: maxDays, newID: uuid.NewString}
}

// CreateBooking books sessionID for studentID.  Inside one transaction
// it locks the session row, takes a fresh snapshot (booking count plus
// the student's current bookings), runs the validator and inserts the
// booking only on allow.
//
// Error contract: a *booking.Denial carries the refusal reason.  A lost
// race at insert time (storage uniqueness backstop) surfaces as a
// Denial with ReasonConcurrencyConflict, distinct from validator
// denials.  repository.ErrTransient means the transaction aborted with
// no side effects and the identical request may be retried.
func (m *BookingManager) CreateBooking(ctx context.Context, studentID string, sessionID uint64) (*model.Booking, error) {
    var created *model.Booking
    err := m.ledger.Transact(ctx, func(tx repository.LedgerTx) error {
        sess, err := tx.SessionState(ctx, sessionID)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return booking.Deny(booking.ReasonSessionNotFound)
            }
            return err
        }
        held, err := tx.StudentBookings(ctx, studentID)
        if err != nil {
            return err
        }
        snap := booking.Snapshot{Session: sess, StudentBookings: held}
        if d := booking.ValidateBooking(snap, m.maxDays); d != nil {
            return d
        }
        b := &model.Booking{
            ID:        m.newID(),
            StudentID: studentID,
            SessionID: sess.ID,
            Day:       sess.Day,
            TimeSlot:  sess.TimeSlot,
        }
        if err := tx.InsertBooking(ctx, b); err != nil {
            return err
        }
        created = b
        return nil
    })
    if err != nil {
        if errors.Is(err, repository.ErrDuplicate) {
            // Validation passed but a concurrent commit got there first.
            return nil, booking.Deny(booking.ReasonConcurrencyConflict)
        }
        return nil, err
    }
    return created, nil
}

// CancelBooking removes bookingID when it belongs to studentID.  The
// ownership filter is part of the lookup, so a missing booking and
// another student's booking both deny with NotFoundOrUnauthorized.  On
// success the deleted booking (with its session's day and slot) is
// returned so callers can refresh derived views without a second read.
func (m *BookingManager) CancelBooking(ctx context.Context, studentID, bookingID string) (*model.Booking, error) {
    var deleted *model.Booking
    err := m.ledger.Transact(ctx, func(tx repository.LedgerTx) error {
        b, err := tx.BookingOwnedBy(ctx, bookingID, studentID)
        if err != nil {
            if errors.Is(err, repository.ErrNotFound) {
                return booking.Deny(booking.ReasonNotFoundOrUnauthorized)
            }
            return err
        }
        if err := tx.DeleteBooking(ctx, b.ID); err != nil {
            return err
        }
        deleted = b
        return nil
    })
    if err != nil {
        return nil, err
    }
    return deleted, nil
}
