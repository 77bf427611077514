package model

import (
    "regexp"
    "strings"
    "time"
)

// Student represents a person who can book sessions.  The primary key
// is the externally issued student ID (e.g. "DR-0001-25"), which is the
// identifier threaded through every booking operation.  Students are
// created on first successful login or by the instructor; they are
// never deleted during normal operation.
//
// Fields:
//  ID        – external student identifier, format XX-NNNN-NN.
//  Name      – display name.
//  Email     – contact email, unique across students.
//  Phone     – optional phone number.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Student struct {
    ID        string    // students.id
    Name      string    // students.name
    Email     string    // students.email
    Phone     *string   // students.phone (nullable)
    CreatedAt time.Time // students.created_at
    UpdatedAt time.Time // students.updated_at
}

// studentIDPattern matches the issued ID format: two uppercase letters,
// a four digit sequence number and a two digit year, dash separated.
var studentIDPattern = regexp.MustCompile(`^[A-Z]{2}-\d{4}-\d{2}$`)

// NormalizeStudentID trims whitespace and upper-cases a raw student ID.
// It returns the normalized ID and whether it matches the issued format.
func NormalizeStudentID(raw string) (string, bool) {
    id := strings.ToUpper(strings.TrimSpace(raw))
    return id, studentIDPattern.MatchString(id)
}

// Instructor represents the staff account that manages the catalog and
// enrollments.  Instructors authenticate with email and password.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – login email, unique.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – creation timestamp.
type Instructor struct {
    ID           uint64    // instructors.id
    Email        string    // instructors.email
    PasswordHash string    // instructors.password_hash
    CreatedAt    time.Time // instructors.created_at
}
