package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MariaDB error numbers the repositories translate into domain errors.
const (
	errDuplicateEntry   = 1062
	errOutOfRange       = 1264
	errRowIsReferenced  = 1451
	errNoReferencedRow  = 1452
	errRowIsReferenced2 = 1217
)

func mysqlErrorNumber(err error) uint16 {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}

// IsDuplicateEntry reports a unique-index violation.
func IsDuplicateEntry(err error) bool {
	return mysqlErrorNumber(err) == errDuplicateEntry
}

// IsMissingReference reports an insert or update whose foreign key points
// at a row that does not exist.
func IsMissingReference(err error) bool {
	return mysqlErrorNumber(err) == errNoReferencedRow
}

// IsReferenced reports a delete blocked by rows still pointing at the target.
func IsReferenced(err error) bool {
	n := mysqlErrorNumber(err)
	return n == errRowIsReferenced || n == errRowIsReferenced2
}

// IsOutOfRange reports a value too large for its numeric column (strict
// sql_mode).
func IsOutOfRange(err error) bool {
	return mysqlErrorNumber(err) == errOutOfRange
}
