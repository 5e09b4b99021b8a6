package persistence

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pqUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err is a duplicate key error from any of
// the supported dialects.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	// SQLite without error translation.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
