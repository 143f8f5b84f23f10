package db

import (
	"strings"

	"github.com/teranos/mousemacro/errors"
)

// ErrDatabaseClosed is returned when the journal is written after shutdown
// closed the connection.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err means the connection is closed, either
// as a wrapped ErrDatabaseClosed or as the raw driver message.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	// database/sql returns its own unwrapped error for closed handles
	return strings.Contains(err.Error(), "database is closed")
}
