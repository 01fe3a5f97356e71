package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"job-board/internal/pkg/optional"

	"github.com/jackc/pgx/v5"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// setClause builds the SET list of a partial UPDATE. Absent fields are
// skipped, null fields are cleared.
type setClause struct {
	parts []string
	args  []any
}

func (s *setClause) arg(v any) string {
	s.args = append(s.args, v)
	return fmt.Sprintf("$%d", len(s.args))
}

func (s *setClause) raw(expr string) {
	s.parts = append(s.parts, expr)
}

func (s *setClause) sql() string {
	return strings.Join(s.parts, ", ")
}

func setField[T any](s *setClause, column string, f optional.Field[T]) {
	if !f.IsSet() {
		return
	}
	if f.IsNull() {
		s.parts = append(s.parts, column+" = NULL")
		return
	}
	v, _ := f.Get()
	s.parts = append(s.parts, column+" = "+s.arg(v))
}

// setString is setField for named string types, which the driver sends as text.
func setString[T ~string](s *setClause, column string, f optional.Field[T]) {
	if !f.IsSet() {
		return
	}
	if f.IsNull() {
		s.parts = append(s.parts, column+" = NULL")
		return
	}
	v, _ := f.Get()
	s.parts = append(s.parts, column+" = "+s.arg(string(v)))
}

// likePattern turns free text into a substring ILIKE pattern.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
