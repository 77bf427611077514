package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/session-booking/internal/model"
)

// SessionRepo provides access to the sessions table (the catalog).
// Sessions form a fixed weekly grid: one row per valid (day, time slot)
// pair, created at seeding time and never deleted.  Only the capacity
// and enabled flag change afterwards.
type SessionRepo struct {
    db *sql.DB
}

// NewSessionRepo returns a SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// Seed inserts the full weekly grid with the given default capacity.
// Existing rows are left untouched (INSERT IGNORE against the
// uq_day_slot unique key), so Seed is safe to run on every startup.
func (r *SessionRepo) Seed(ctx context.Context, defaultCapacity uint32) error {
    const q = `INSERT IGNORE INTO sessions (day, time_slot, capacity, enabled) VALUES (?, ?, ?, 1)`
    for _, day := range model.Days {
        for _, slot := range model.SlotsForDay(day) {
            if _, err := r.db.ExecContext(ctx, q, day, slot, defaultCapacity); err != nil {
                return err
            }
        }
    }
    return nil
}

// GetByID returns a single session or ErrNotFound.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
    const q = `SELECT id, day, time_slot, capacity, enabled, created_at, updated_at FROM sessions WHERE id = ?`
    var s model.Session
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &s.ID, &s.Day, &s.TimeSlot, &s.Capacity, &s.Enabled, &s.CreatedAt, &s.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &s, nil
}

// SetEnabled toggles a session's enabled flag and returns the updated
// row.  Disabling never touches existing bookings.  RowsAffected is not
// consulted: zero rows is ambiguous between "missing" and "flag already
// set", so existence is reported by the read-back instead.
func (r *SessionRepo) SetEnabled(ctx context.Context, id uint64, enabled bool) (*model.Session, error) {
    const q = `UPDATE sessions SET enabled = ? WHERE id = ?`
    if _, err := r.db.ExecContext(ctx, q, enabled, id); err != nil {
        return nil, err
    }
    return r.GetByID(ctx, id)
}

// SetCapacity updates a session's capacity and returns the updated row.
// Capacity must be positive; lowering it below the current booking
// count is allowed and simply leaves the session over-subscribed until
// cancellations catch up (no bookings are evicted).
func (r *SessionRepo) SetCapacity(ctx context.Context, id uint64, capacity uint32) (*model.Session, error) {
    const q = `UPDATE sessions SET capacity = ? WHERE id = ?`
    if _, err := r.db.ExecContext(ctx, q, capacity, id); err != nil {
        return nil, err
    }
    return r.GetByID(ctx, id)
}

// EnrollmentRow is one line of the instructor's enrollment roster: a
// booking joined with its student and session.
type EnrollmentRow struct {
    SessionID    uint64         `json:"session_id"`
    Day          model.Day      `json:"day"`
    TimeSlot     model.TimeSlot `json:"time_slot"`
    BookingID    string         `json:"booking_id"`
    StudentID    string         `json:"student_id"`
    StudentName  string         `json:"student_name"`
    StudentEmail string         `json:"student_email"`
    BookedAt     string         `json:"booked_at"`
}

// ListEnrollments returns every active booking joined with student and
// session details, ordered by the weekly grid then booking time.  This
// feeds the instructor dashboard and the CSV export.
func (r *SessionRepo) ListEnrollments(ctx context.Context) ([]EnrollmentRow, error) {
    const q = `SELECT s.id, s.day, s.time_slot, b.id, st.id, st.name, st.email, b.created_at
               FROM bookings b
               JOIN sessions s ON s.id = b.session_id
               JOIN students st ON st.id = b.student_id
               ORDER BY FIELD(s.day,'MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY'), s.time_slot, b.created_at`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]EnrollmentRow, 0, 16)
    for rows.Next() {
        var e EnrollmentRow
        var bookedAt sql.NullTime
        if err := rows.Scan(&e.SessionID, &e.Day, &e.TimeSlot, &e.BookingID, &e.StudentID, &e.StudentName, &e.StudentEmail, &bookedAt); err != nil {
            return nil, err
        }
        if bookedAt.Valid {
            e.BookedAt = bookedAt.Time.UTC().Format("2006-01-02 15:04:05")
        }
        out = append(out, e)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
