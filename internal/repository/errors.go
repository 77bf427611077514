// Package repository implements data access against MySQL.  This file
// defines sentinel errors shared across repositories so higher layers
// can distinguish failure classes without inspecting driver errors.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested row does not exist, or when
// an ownership-scoped lookup excludes it.  The two cases are not
// distinguished.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint.  For bookings this means a concurrent request won the
// race despite validation passing.
var ErrDuplicate = errors.New("duplicate")

// ErrTransient is returned for lock-wait timeouts and deadlocks.  The
// failed operation left no partial state and is safe to retry with
// identical inputs.
var ErrTransient = errors.New("transient storage error")

// MySQL server error numbers that map onto the sentinels above.
const (
    mysqlDuplicateEntry  = 1062
    mysqlLockWaitTimeout = 1205
    mysqlDeadlock        = 1213
)

// classify translates driver-level errors into sentinel errors.  Other
// errors pass through unchanged.
func classify(err error) error {
    if err == nil {
        return nil
    }
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        switch me.Number {
        case mysqlDuplicateEntry:
            return ErrDuplicate
        case mysqlLockWaitTimeout, mysqlDeadlock:
            return ErrTransient
        }
    }
    return err
}
