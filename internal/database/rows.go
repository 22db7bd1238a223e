package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// NullString maps both nil and "" to NULL.
func NullString(s *string) sql.Null[string] {
	if s == nil || *s == "" {
		return sql.Null[string]{}
	}

	return sql.Null[string]{V: *s, Valid: true}
}

// Ptr returns nil for NULL and a pointer to the value otherwise.
func Ptr[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}

	return &n.V
}

// IsForeignKeyViolation reports whether err is PostgreSQL's foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}

// Assignments collects the SET list of a partial update. Placeholders are numbered from $1
// in the order columns are added.
type Assignments struct {
	cols []string
	args []any
}

func (a *Assignments) Add(col string, v any) {
	a.args = append(a.args, v)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", col, len(a.args)))
}

func (a *Assignments) Empty() bool {
	return len(a.cols) == 0
}

// Update renders an UPDATE of the row with the given id and the matching arguments, id being
// the last placeholder. table is "<name> <alias>"; returning may refer to the alias.
func (a *Assignments) Update(table, returning string, id int64) (string, []any) {
	name, alias, _ := strings.Cut(table, " ")
	query := fmt.Sprintf("UPDATE %s AS %s SET %s WHERE %s.id = $%d RETURNING %s",
		name, alias, strings.Join(a.cols, ", "), alias, len(a.args)+1, returning)

	return query, append(append([]any(nil), a.args...), id)
}
