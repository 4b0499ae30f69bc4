package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/mailtocall-api/internal/model"
	"github.com/jwalitptl/mailtocall-api/internal/repository"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
)

// table describes how an entity is stored.
type table struct {
	name      string
	columns   []string
	key       string
	orderBy   string
	updatedAt bool
}

func (t table) selectList() string {
	return strings.Join(t.columns, ", ")
}

func (t table) selectFrom() string {
	return fmt.Sprintf("SELECT %s FROM %s", t.selectList(), t.name)
}

// crud runs the statements shared by every entity repository. Each method is
// a single statement.
type crud[T any] struct {
	db      *sqlx.DB
	table   table
	metrics *metrics.Metrics
}

func newCRUD[T any](db *sqlx.DB, t table, m *metrics.Metrics) crud[T] {
	return crud[T]{db: db, table: t, metrics: m}
}

func (c *crud[T]) insert(ctx context.Context, vals *values) (*T, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		c.table.name,
		strings.Join(vals.columns, ", "),
		strings.Join(vals.placeholders(), ", "),
		c.table.selectList(),
	)

	var out T
	start := time.Now()
	err := c.db.GetContext(ctx, &out, query, vals.args...)
	c.metrics.ObserveQuery(c.table.name, "create", start, err)
	if err != nil {
		return nil, c.wrap("create", err)
	}
	return &out, nil
}

func (c *crud[T]) get(ctx context.Context, id interface{}) (*T, error) {
	query := fmt.Sprintf("%s WHERE %s = $1", c.table.selectFrom(), c.table.key)

	var out T
	start := time.Now()
	err := c.db.GetContext(ctx, &out, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		c.metrics.ObserveQuery(c.table.name, "get", start, nil)
		return nil, nil
	}
	c.metrics.ObserveQuery(c.table.name, "get", start, err)
	if err != nil {
		return nil, c.wrap("get", err)
	}
	return &out, nil
}

func (c *crud[T]) list(ctx context.Context, skip, limit int) ([]T, error) {
	return c.search(ctx, &conditions{}, skip, limit)
}

func (c *crud[T]) count(ctx context.Context) (int, error) {
	return c.searchCount(ctx, &conditions{})
}

// search returns one window of the rows matching conds in the default order.
func (c *crud[T]) search(ctx context.Context, conds *conditions, skip, limit int) ([]T, error) {
	window := conds.clone()
	query := fmt.Sprintf("%s%s ORDER BY %s LIMIT %s OFFSET %s",
		c.table.selectFrom(),
		window.where(),
		c.table.orderBy,
		window.bind(limit),
		window.bind(skip),
	)
	return c.selectRows(ctx, "search", query, window.args)
}

// searchCount counts the rows matching conds. Callers pass the conditions
// built for the paired search call.
func (c *crud[T]) searchCount(ctx context.Context, conds *conditions) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", c.table.name, conds.where())
	return c.scalar(ctx, "count", query, conds.args...)
}

// selectWhere returns every matching row in the given order.
func (c *crud[T]) selectWhere(ctx context.Context, conds *conditions, orderBy string) ([]T, error) {
	query := fmt.Sprintf("%s%s ORDER BY %s", c.table.selectFrom(), conds.where(), orderBy)
	return c.selectRows(ctx, "select", query, conds.args)
}

// update writes the present fields and returns the new row. With nothing to
// write it returns the current row.
func (c *crud[T]) update(ctx context.Context, id interface{}, vals *values) (*T, error) {
	if vals.empty() {
		return c.get(ctx, id)
	}

	sets := vals.assignments()
	if c.table.updatedAt {
		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	}
	args := append(vals.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		c.table.name,
		strings.Join(sets, ", "),
		c.table.key,
		len(args),
		c.table.selectList(),
	)

	var out T
	start := time.Now()
	err := c.db.GetContext(ctx, &out, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		c.metrics.ObserveQuery(c.table.name, "update", start, nil)
		return nil, nil
	}
	c.metrics.ObserveQuery(c.table.name, "update", start, err)
	if err != nil {
		return nil, c.wrap("update", err)
	}
	return &out, nil
}

func (c *crud[T]) delete(ctx context.Context, id interface{}) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", c.table.name, c.table.key)
	n, err := c.exec(ctx, "delete", query, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *crud[T]) selectRows(ctx context.Context, op, query string, args []interface{}) ([]T, error) {
	out := []T{}
	start := time.Now()
	err := c.db.SelectContext(ctx, &out, query, args...)
	c.metrics.ObserveQuery(c.table.name, op, start, err)
	if err != nil {
		return nil, c.wrap(op, err)
	}
	return out, nil
}

func (c *crud[T]) scalar(ctx context.Context, op, query string, args ...interface{}) (int, error) {
	var n int
	start := time.Now()
	err := c.db.GetContext(ctx, &n, query, args...)
	c.metrics.ObserveQuery(c.table.name, op, start, err)
	if err != nil {
		return 0, c.wrap(op, err)
	}
	return n, nil
}

func (c *crud[T]) exec(ctx context.Context, op, query string, args ...interface{}) (int64, error) {
	start := time.Now()
	result, err := c.db.ExecContext(ctx, query, args...)
	c.metrics.ObserveQuery(c.table.name, op, start, err)
	if err != nil {
		return 0, c.wrap(op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// wrap adds context to a store error and tags data errors (SQLSTATE classes
// 22 and 23) with repository.ErrInvalidData.
func (c *crud[T]) wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "22", "23":
			return fmt.Errorf("failed to %s %s: %w: %w", op, c.table.name, repository.ErrInvalidData, err)
		}
	}
	return fmt.Errorf("failed to %s %s: %w", op, c.table.name, err)
}

// values collects column/argument pairs for INSERT and UPDATE statements.
type values struct {
	columns []string
	args    []interface{}
	exprs   []string
}

func (v *values) add(column string, arg interface{}) *values {
	v.columns = append(v.columns, column)
	v.args = append(v.args, arg)
	return v
}

// expr adds an assignment whose right-hand side is raw SQL with no arguments.
// Only used by UPDATE.
func (v *values) expr(assignment string) *values {
	v.exprs = append(v.exprs, assignment)
	return v
}

func (v *values) empty() bool {
	return len(v.columns) == 0 && len(v.exprs) == 0
}

func (v *values) placeholders() []string {
	out := make([]string, len(v.args))
	for i := range v.args {
		out[i] = fmt.Sprintf("$%d", i+1)
	}
	return out
}

func (v *values) assignments() []string {
	out := make([]string, 0, len(v.columns)+len(v.exprs))
	for i, col := range v.columns {
		out = append(out, fmt.Sprintf("%s = $%d", col, i+1))
	}
	return append(out, v.exprs...)
}

// present adds column when the optional field was part of the payload.
func present[V any](v *values, column string, o model.Optional[V]) {
	if o.Set {
		v.add(column, o.Arg())
	}
}

// conditions is a conjunction of parameter-bound predicates.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) bind(arg interface{}) string {
	c.args = append(c.args, arg)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *conditions) clone() *conditions {
	return &conditions{
		clauses: append([]string(nil), c.clauses...),
		args:    append([]interface{}(nil), c.args...),
	}
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// Where adds a predicate; format receives the placeholder of arg.
func (c *conditions) Where(format string, arg interface{}) *conditions {
	c.clauses = append(c.clauses, fmt.Sprintf(format, c.bind(arg)))
	return c
}

// Anywhere matches term as a case-insensitive substring of any of columns.
func (c *conditions) Anywhere(term string, columns ...string) *conditions {
	if term == "" || len(columns) == 0 {
		return c
	}
	p := c.bind(likePattern(term))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", col, p)
	}
	c.clauses = append(c.clauses, "("+strings.Join(parts, " OR ")+")")
	return c
}

// Contains matches value as a case-insensitive substring of column.
func (c *conditions) Contains(column, value string) *conditions {
	if value == "" {
		return c
	}
	return c.Where("LOWER("+column+") LIKE LOWER(%s)", likePattern(value))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for a substring LIKE match, escaping the wildcards it
// contains with the default backslash escape.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (c *conditions) Equal(column, value string) *conditions {
	if value == "" {
		return c
	}
	return c.Where(column+" = %s", value)
}

func (c *conditions) EqualFold(column, value string) *conditions {
	if value == "" {
		return c
	}
	return c.Where("LOWER("+column+") = LOWER(%s)", value)
}

func (c *conditions) Flag(column string, value *bool) *conditions {
	if value == nil {
		return c
	}
	return c.Where(column+" = %s", *value)
}

func atLeast[V any](c *conditions, column string, bound *V) {
	if bound != nil {
		c.Where(column+" >= %s", *bound)
	}
}

func atMost[V any](c *conditions, column string, bound *V) {
	if bound != nil {
		c.Where(column+" <= %s", *bound)
	}
}
