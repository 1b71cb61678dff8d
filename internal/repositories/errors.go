package repositories

import (
	"errors"
	"strings"
)

// Common repository errors
var (
	// Trade errors
	ErrTradeNotFound = errors.New("trade not found")
	ErrInvalidTrade  = errors.New("invalid trade data")

	// Option errors
	ErrOptionNotFound   = errors.New("option not found")
	ErrOptionNameExists = errors.New("option with this name already exists")
	ErrOptionInUse      = errors.New("option is still referenced by trades")

	// Collection errors
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrCollectionNameExists = errors.New("collection with this name already exists")

	// Preference errors
	ErrPreferenceNotFound = errors.New("preference not found")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Query errors
	ErrInvalidSortField   = errors.New("invalid sort field")
	ErrInvalidFilterValue = errors.New("invalid filter value")

	// General errors
	ErrDatabaseConnection = errors.New("database connection error")
	ErrInvalidInput       = errors.New("invalid input")
)

// isDuplicateKeyError checks whether the error is a unique constraint
// violation, covering both the PostgreSQL and SQLite message shapes
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "violates unique constraint") ||
		strings.Contains(errStr, "unique constraint failed")
}

// isForeignKeyError checks whether the error is a foreign key violation
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "violates foreign key constraint") ||
		strings.Contains(errStr, "foreign key constraint failed")
}
