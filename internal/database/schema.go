package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL statements executed at startup.  Statements are
// idempotent (IF NOT EXISTS) so EnsureSchema can run on every boot.
//
// The two unique keys on bookings are the storage-level backstop for
// the booking invariants: uq_student_session forbids a duplicate
// (student, session) pair and uq_student_day forbids two bookings by
// one student on the same day, even if two transactions race past the
// validator.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id         VARCHAR(20)  NOT NULL,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		phone      VARCHAR(32)  NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_students_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS instructors (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_instructors_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		day        VARCHAR(16)     NOT NULL,
		time_slot  VARCHAR(16)     NOT NULL,
		capacity   INT UNSIGNED    NOT NULL DEFAULT 4,
		enabled    TINYINT(1)      NOT NULL DEFAULT 1,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_day_slot (day, time_slot)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id         CHAR(36)        NOT NULL,
		student_id VARCHAR(20)     NOT NULL,
		session_id BIGINT UNSIGNED NOT NULL,
		day        VARCHAR(16)     NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_student_session (student_id, session_id),
		UNIQUE KEY uq_student_day (student_id, day),
		KEY idx_bookings_session (session_id),
		CONSTRAINT fk_bookings_student FOREIGN KEY (student_id) REFERENCES students (id),
		CONSTRAINT fk_bookings_session FOREIGN KEY (session_id) REFERENCES sessions (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
