package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
)

// SQLSTATE de contención: lock_not_available, deadlock_detected, serialization_failure.
var contentionCodes = map[string]bool{
	"55P03": true,
	"40P01": true,
	"40001": true,
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la empresa (u otra referencia) no existe.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isInvalidText 22P02: p. ej. un id que no es UUID. Se trata como "no existe".
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// isLockContention indica si Postgres abortó por esperar o disputar un bloqueo.
func isLockContention(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return contentionCodes[pgErr.Code]
	}
	return false
}

// wrapErr traduce la contención a domain.ErrLockContention y envuelve el resto con op.
func wrapErr(op string, err error) error {
	if isLockContention(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrLockContention)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// queryErr como wrapErr, pero un filtro que no es UUID (22P02) se informa como entrada inválida.
func queryErr(op string, err error) error {
	if isInvalidText(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	}
	return wrapErr(op, err)
}

// nullIfEmpty guarda "" como NULL (columnas FK opcionales).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
