package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotAvailable means at least one requested room already has a
	// reservation overlapping the requested range.
	ErrNotAvailable = errors.New("selected rooms are not available for reservation within given time")

	// ErrRoomHasReservations blocks deletion of a room that any
	// reservation, past or future, still references.
	ErrRoomHasReservations = errors.New("cannot delete room that has reservations")
)

// ValidationError is a field-level problem with a write or a search
// parameter. Field is empty for non-field errors.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// isDuplicateKey recognizes unique-key violations from MySQL (error
// 1062) and from the sqlite driver used in tests.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "Duplicate entry")
}
