package persistence

import (
	"errors"
	"strings"

	"github.com/retail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain errors.
func translateError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound.WithMessage(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return shared.ErrAlreadyExists.WithMessage(what + " already exists")
	default:
		return err
	}
}

// isUniqueViolation recognizes unique constraint failures from drivers that
// gorm does not translate.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
