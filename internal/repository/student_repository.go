package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/session-booking/internal/model"
)

// StudentRepo provides access to the students table.
type StudentRepo struct {
    db *sql.DB
}

// NewStudentRepo returns a StudentRepo bound to the given database.
func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{db: db} }

// GetByID returns a student by external ID or ErrNotFound.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
    const q = `SELECT id, name, email, phone, created_at, updated_at FROM students WHERE id = ?`
    var s model.Student
    var phone sql.NullString
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Email, &phone, &s.CreatedAt, &s.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    if phone.Valid {
        p := phone.String
        s.Phone = &p
    }
    return &s, nil
}

// Create inserts a new student.  Email and ID are normalized before
// insertion.  ErrDuplicate is returned when either the ID or the email
// is already taken.
func (r *StudentRepo) Create(ctx context.Context, id, name, email string, phone *string) (*model.Student, error) {
    id = strings.ToUpper(strings.TrimSpace(id))
    email = strings.ToLower(strings.TrimSpace(email))
    name = strings.TrimSpace(name)
    const q = `INSERT INTO students (id, name, email, phone) VALUES (?, ?, ?, ?)`
    var phoneVal interface{}
    if phone != nil && strings.TrimSpace(*phone) != "" {
        phoneVal = strings.TrimSpace(*phone)
    }
    if _, err := r.db.ExecContext(ctx, q, id, name, email, phoneVal); err != nil {
        return nil, classify(err)
    }
    return r.GetByID(ctx, id)
}

// ListAll returns every student ordered by ID, for the instructor
// surface.
func (r *StudentRepo) ListAll(ctx context.Context) ([]model.Student, error) {
    const q = `SELECT id, name, email, phone, created_at, updated_at FROM students ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Student, 0, 16)
    for rows.Next() {
        var s model.Student
        var phone sql.NullString
        if err := rows.Scan(&s.ID, &s.Name, &s.Email, &phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
            return nil, err
        }
        if phone.Valid {
            p := phone.String
            s.Phone = &p
        }
        out = append(out, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
