package sinistro

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

var (
	// ErrNotFound signals that no claim or installment matched the lookup.
	ErrNotFound = errors.New("record not found")

	// ErrCapacityExceeded signals that a schedule operation would push a
	// claim past the 10-installment limit. Nothing is written when raised.
	ErrCapacityExceeded = errors.New("payment schedule capacity exceeded")

	// ErrValidation signals an enum field set outside its allowed values.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signals that the unique-constraint backstop detected a
	// concurrent upsert for the same natural key. Callers should retry the
	// whole upsert.
	ErrConflict = errors.New("concurrent upsert conflict")
)

// IsTransient reports whether err is a connection-level failure worth
// retrying at the caller layer. The core itself never retries.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53", "57", "58":
			return true
		}
	}
	return false
}

// IsUniqueViolation reports whether err is the Postgres unique-constraint
// violation used as the upsert race backstop.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
