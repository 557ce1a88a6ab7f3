package store

import (
	"errors"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (class 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsInvalidInput reports whether err is a Postgres invalid text
// representation error (class 22P02), such as a malformed uuid compared
// against a uuid column. Repositories treat it as a lookup miss: a
// client-supplied id that cannot be a uuid cannot name an existing row.
func IsInvalidInput(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}
