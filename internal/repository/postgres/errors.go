package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/scorekeeper-api/internal/pkg/errors"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// hasPgCode проверяет код ошибки Postgres для pgconn и lib/pq драйверов
func hasPgCode(err error, code string) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, uniqueViolationCode) || errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, foreignKeyViolationCode) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// mapWriteError переводит нарушение уникальности в ErrConflict,
// ссылку на несуществующую запись в ErrValidation, остальные ошибки не трогает
func mapWriteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s already exists", apperrors.ErrConflict, what)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s references a missing record", apperrors.ErrValidation, what)
	}
	return err
}

// mapLookupError переводит gorm.ErrRecordNotFound в ErrNotFound
func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
