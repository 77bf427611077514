package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/session-booking/internal/model"
)

// InstructorRepo provides access to the instructors table.  Instructor
// accounts are provisioned at startup from configuration; there is no
// self-service registration.
type InstructorRepo struct {
    db *sql.DB
}

// NewInstructorRepo returns an InstructorRepo bound to the given database.
func NewInstructorRepo(db *sql.DB) *InstructorRepo { return &InstructorRepo{db: db} }

// GetByEmail fetches an instructor by normalized email or ErrNotFound.
func (r *InstructorRepo) GetByEmail(ctx context.Context, email string) (*model.Instructor, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    const q = `SELECT id, email, password_hash, created_at FROM instructors WHERE email = ? LIMIT 1`
    var ins model.Instructor
    err := r.db.QueryRowContext(ctx, q, email).Scan(&ins.ID, &ins.Email, &ins.PasswordHash, &ins.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrNotFound
        }
        return nil, err
    }
    return &ins, nil
}

// EnsureSeed inserts the configured instructor account if it does not
// already exist.  Safe to run on every startup.
func (r *InstructorRepo) EnsureSeed(ctx context.Context, email, passwordHash string) error {
    email = strings.ToLower(strings.TrimSpace(email))
    const q = `INSERT IGNORE INTO instructors (email, password_hash) VALUES (?, ?)`
    _, err := r.db.ExecContext(ctx, q, email, passwordHash)
    return err
}
