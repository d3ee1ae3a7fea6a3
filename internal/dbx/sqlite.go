package dbx

import (
	"errors"

	sqlite "modernc.org/sqlite"
)

// IsConstraint reports whether err is a SQLite constraint violation carrying
// one of the given extended result codes (e.g. SQLITE_CONSTRAINT_UNIQUE).
func IsConstraint(err error, codes ...int) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.Code() == c {
			return true
		}
	}
	return false
}
