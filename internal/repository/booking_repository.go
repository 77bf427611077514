package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/session-booking/internal/booking"
    "github.com/iliyamo/session-booking/internal/model"
)

// Ledger is the authoritative booking store as seen by the transaction
// manager.  Transact runs fn inside a single storage transaction; every
// read fn performs through the LedgerTx sees state consistent with the
// writes it will commit.  Implementations must roll back when fn
// returns an error and surface commit failures through the returned
// error.
type Ledger interface {
    Transact(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx exposes the reads and writes available inside one ledger
// transaction.  Reads lock the rows they touch so that two concurrent
// transactions cannot both validate against the same free spot.
type LedgerTx interface {
    // SessionState returns the locked state of one session together with
    // its current booking count, or ErrNotFound.
    SessionState(ctx context.Context, sessionID uint64) (*booking.SessionState, error)
    // StudentBookings returns (and locks) all bookings the student holds.
    StudentBookings(ctx context.Context, studentID string) ([]booking.StudentBooking, error)
    // InsertBooking adds a booking row.  ErrDuplicate signals that a
    // uniqueness constraint fired, i.e. a lost race.
    InsertBooking(ctx context.Context, b *model.Booking) error
    // BookingOwnedBy returns the booking with the given ID only when it
    // belongs to studentID; otherwise ErrNotFound.
    BookingOwnedBy(ctx context.Context, bookingID, studentID string) (*model.Booking, error)
    // DeleteBooking removes a booking row by ID.
    DeleteBooking(ctx context.Context, bookingID string) error
}

// BookingRepo provides access to the bookings table.  It implements
// Ledger for transactional mutation and additionally exposes plain
// read methods used by the availability and listing endpoints.  All
// timestamps are stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Transact implements Ledger.  It opens a transaction, runs fn with a
// LedgerTx bound to it and commits when fn succeeds.  Any error from fn
// or from commit is classified (duplicate key, lock timeout, deadlock)
// before being returned; the transaction is rolled back on every error
// path so a failed call leaves no partial state.
func (r *BookingRepo) Transact(ctx context.Context, fn func(tx LedgerTx) error) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return classify(err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(&ledgerTx{tx: tx}); err != nil {
        return classify(err)
    }
    if err := tx.Commit(); err != nil {
        return classify(err)
    }
    committed = true
    return nil
}

// ledgerTx implements LedgerTx on top of a live *sql.Tx.
type ledgerTx struct {
    tx *sql.Tx
}

// SessionState reads the target session with FOR UPDATE so the row
// stays locked until the transaction ends, then counts its bookings.
// Because every booking writer for this session must acquire the same
// row lock first, the count cannot change under us before commit.
func (t *ledgerTx) SessionState(ctx context.Context, sessionID uint64) (*booking.SessionState, error) {
    const q = `SELECT id, day, time_slot, capacity, enabled FROM sessions WHERE id = ? FOR UPDATE`
    var st booking.SessionState
    err := t.tx.QueryRowContext(ctx, q, sessionID).Scan(&st.ID, &st.Day, &st.TimeSlot, &st.Capacity, &st.Enabled)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    const countQ = `SELECT COUNT(*) FROM bookings WHERE session_id = ?`
    if err := t.tx.QueryRowContext(ctx, countQ, sessionID).Scan(&st.BookingCount); err != nil {
        return nil, err
    }
    return &st, nil
}

// StudentBookings loads the student's current bookings with FOR UPDATE.
// Locking the rows (and, under InnoDB, the index range they occupy)
// keeps the per-day and max-days checks stable against a concurrent
// booking by the same student on another session.
func (t *ledgerTx) StudentBookings(ctx context.Context, studentID string) ([]booking.StudentBooking, error) {
    const q = `SELECT b.id, b.session_id, b.day, s.time_slot
               FROM bookings b
               JOIN sessions s ON s.id = b.session_id
               WHERE b.student_id = ?
               ORDER BY b.created_at
               FOR UPDATE`
    rows, err := t.tx.QueryContext(ctx, q, studentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]booking.StudentBooking, 0, 4)
    for rows.Next() {
        var sb booking.StudentBooking
        if err := rows.Scan(&sb.BookingID, &sb.SessionID, &sb.Day, &sb.TimeSlot); err != nil {
            return nil, err
        }
        out = append(out, sb)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// InsertBooking adds the booking row.  The uq_student_session and
// uq_student_day unique keys act as the storage-level backstop: a
// violation surfaces as ErrDuplicate and means validation raced with a
// concurrent commit.
func (t *ledgerTx) InsertBooking(ctx context.Context, b *model.Booking) error {
    const q = `INSERT INTO bookings (id, student_id, session_id, day) VALUES (?, ?, ?, ?)`
    if _, err := t.tx.ExecContext(ctx, q, b.ID, b.StudentID, b.SessionID, b.Day); err != nil {
        return classify(err)
    }
    // Query back to populate the DB-assigned creation timestamp.
    const sel = `SELECT created_at FROM bookings WHERE id = ?`
    return t.tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt)
}

// BookingOwnedBy looks up a booking scoped to its owner.  The ownership
// filter is part of the query, not an after-the-fact check, so a
// missing booking and another student's booking are indistinguishable
// to the caller.
func (t *ledgerTx) BookingOwnedBy(ctx context.Context, bookingID, studentID string) (*model.Booking, error) {
    const q = `SELECT b.id, b.student_id, b.session_id, b.day, s.time_slot, b.created_at
               FROM bookings b
               JOIN sessions s ON s.id = b.session_id
               WHERE b.id = ? AND b.student_id = ?
               FOR UPDATE`
    var b model.Booking
    err := t.tx.QueryRowContext(ctx, q, bookingID, studentID).Scan(
        &b.ID, &b.StudentID, &b.SessionID, &b.Day, &b.TimeSlot, &b.CreatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &b, nil
}

// DeleteBooking removes the booking row.  Deletion is physical; there
// is no retained cancelled state.
func (t *ledgerTx) DeleteBooking(ctx context.Context, bookingID string) error {
    const q = `DELETE FROM bookings WHERE id = ?`
    _, err := t.tx.ExecContext(ctx, q, bookingID)
    return err
}

// SessionStates returns every session in the catalog with its current
// booking count, ordered by day then slot.  This is the read path for
// the availability projection; it takes no locks and must never feed a
// capacity decision.
func (r *BookingRepo) SessionStates(ctx context.Context) ([]booking.SessionState, error) {
    const q = `SELECT s.id, s.day, s.time_slot, s.capacity, s.enabled, COUNT(b.id)
               FROM sessions s
               LEFT JOIN bookings b ON b.session_id = s.id
               GROUP BY s.id, s.day, s.time_slot, s.capacity, s.enabled
               ORDER BY FIELD(s.day,'MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY'), s.time_slot`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]booking.SessionState, 0, 32)
    for rows.Next() {
        var st booking.SessionState
        if err := rows.Scan(&st.ID, &st.Day, &st.TimeSlot, &st.Capacity, &st.Enabled, &st.BookingCount); err != nil {
            return nil, err
        }
        out = append(out, st)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// StudentBookings is the lock-free read used by the availability and
// my-bookings endpoints.
func (r *BookingRepo) StudentBookings(ctx context.Context, studentID string) ([]booking.StudentBooking, error) {
    const q = `SELECT b.id, b.session_id, b.day, s.time_slot
               FROM bookings b
               JOIN sessions s ON s.id = b.session_id
               WHERE b.student_id = ?
               ORDER BY b.created_at`
    rows, err := r.db.QueryContext(ctx, q, studentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]booking.StudentBooking, 0, 4)
    for rows.Next() {
        var sb booking.StudentBooking
        if err := rows.Scan(&sb.BookingID, &sb.SessionID, &sb.Day, &sb.TimeSlot); err != nil {
            return nil, err
        }
        out = append(out, sb)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListByStudent returns the student's bookings with full detail for the
// my-bookings listing, newest first.
func (r *BookingRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Booking, error) {
    const q = `SELECT b.id, b.student_id, b.session_id, b.day, s.time_slot, b.created_at
               FROM bookings b
               JOIN sessions s ON s.id = b.session_id
               WHERE b.student_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, studentID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0, 4)
    for rows.Next() {
        var b model.Booking
        if err := rows.Scan(&b.ID, &b.StudentID, &b.SessionID, &b.Day, &b.TimeSlot, &b.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// DeleteAll clears the entire ledger and returns the number of bookings
// removed.  Used by the instructor's bulk reset (e.g. weekly).
func (r *BookingRepo) DeleteAll(ctx context.Context) (int64, error) {
    res, err := r.db.ExecContext(ctx, `DELETE FROM bookings`)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
