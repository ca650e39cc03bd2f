package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"dungeonbot/database"
)

// Codec converts an entity to and from its raw record
type Codec[T any] interface {
	// Schema describes the table the records live in
	Schema() Schema
	// Encode produces the record in schema column order
	Encode(v T) Record
	// Decode is the left inverse of Encode; it panics on malformed records
	Decode(r Record) T
}

// Condition is an equality filter on one column
type Condition struct {
	Column string
	Value  any
}

// Eq builds an equality condition
func Eq(column string, value any) Condition {
	return Condition{Column: column, Value: value}
}

// queryable is satisfied by both *sql.DB and *sql.Tx
type queryable interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Table is the relational adapter for one entity kind. Statements are built
// once from the schema; every value travels as a bound parameter.
type Table[T any] struct {
	db      *database.DB
	q       queryable
	codec   Codec[T]
	schema  Schema
	dialect database.Dialect

	columnList string
	insertSQL  string
	upsertSQL  string
}

// NewTable creates a table adapter bound to the connection pool
func NewTable[T any](db *database.DB, codec Codec[T]) *Table[T] {
	t := &Table[T]{
		db:      db,
		q:       db.DB,
		codec:   codec,
		schema:  codec.Schema(),
		dialect: db.Dialect,
	}
	t.build()
	return t
}

// WithTx returns a copy of the table whose statements run inside tx
func (t *Table[T]) WithTx(tx *sql.Tx) *Table[T] {
	c := *t
	c.q = tx
	return &c
}

// Schema returns the table's schema descriptor
func (t *Table[T]) Schema() Schema {
	return t.schema
}

func (t *Table[T]) build() {
	names := make([]string, len(t.schema.Columns))
	marks := make([]string, len(t.schema.Columns))
	for i, c := range t.schema.Columns {
		names[i] = c.Name
		marks[i] = t.dialect.Placeholder(i + 1)
	}
	t.columnList = strings.Join(names, ", ")

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.schema.Table, t.columnList, strings.Join(marks, ", "))
	t.insertSQL = insert + " ON CONFLICT DO NOTHING"

	var sets []string
	for _, c := range t.schema.Columns {
		if !t.schema.IsKey(c.Name) {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", c.Name, c.Name))
		}
	}
	conflict := fmt.Sprintf(" ON CONFLICT (%s)", strings.Join(t.schema.Key, ", "))
	if len(sets) == 0 {
		t.upsertSQL = insert + conflict + " DO NOTHING"
	} else {
		t.upsertSQL = insert + conflict + " DO UPDATE SET " + strings.Join(sets, ", ")
	}
}

// EnsureTable creates the table if it does not exist
func (t *Table[T]) EnsureTable(ctx context.Context) error {
	defs := make([]string, 0, len(t.schema.Columns)+1)
	for _, c := range t.schema.Columns {
		defs = append(defs, fmt.Sprintf("%s %s NOT NULL DEFAULT %s", c.Name, t.dialect.ColumnType(string(c.Kind)), c.Default))
	}
	defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(t.schema.Key, ", ")))

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.schema.Table, strings.Join(defs, ",\n\t"))
	if _, err := t.q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure table %s: %w", t.schema.Table, err)
	}
	return nil
}

// FindOne retrieves the row with the given key values, in schema key order
func (t *Table[T]) FindOne(ctx context.Context, key ...any) (T, bool, error) {
	var zero T
	conds, err := t.keyConditions(key)
	if err != nil {
		return zero, false, err
	}

	rows, err := t.FindMany(ctx, conds...)
	if err != nil {
		return zero, false, err
	}
	if len(rows) == 0 {
		return zero, false, nil
	}
	return rows[0], true, nil
}

// FindMany returns every row matching all conditions, ordered by key
func (t *Table[T]) FindMany(ctx context.Context, conds ...Condition) ([]T, error) {
	where, args, err := t.where(conds)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s", t.columnList, t.schema.Table, where, strings.Join(t.schema.Key, ", "))
	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.schema.Table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		r, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.schema.Table, err)
		}
		out = append(out, t.codec.Decode(r))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", t.schema.Table, err)
	}

	return out, nil
}

// InsertOne inserts the entity, ignoring it when the key already exists
func (t *Table[T]) InsertOne(ctx context.Context, v T) error {
	r := t.encode(v)
	if _, err := t.q.ExecContext(ctx, t.insertSQL, r...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", t.schema.Table, err)
	}
	return nil
}

// Update upserts the entity: inserted when new, all non-key columns overwritten otherwise
func (t *Table[T]) Update(ctx context.Context, v T) error {
	r := t.encode(v)
	if _, err := t.q.ExecContext(ctx, t.upsertSQL, r...); err != nil {
		return fmt.Errorf("failed to update %s: %w", t.schema.Table, err)
	}
	return nil
}

// UpdateAll upserts every entity in a single transaction
func (t *Table[T]) UpdateAll(ctx context.Context, vs ...T) error {
	if _, inTx := t.q.(*sql.Tx); inTx {
		for _, v := range vs {
			if err := t.Update(ctx, v); err != nil {
				return err
			}
		}
		return nil
	}

	return t.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return t.WithTx(tx).UpdateAll(ctx, vs...)
	})
}

// DeleteOne removes the row with the given key values
func (t *Table[T]) DeleteOne(ctx context.Context, key ...any) error {
	conds, err := t.keyConditions(key)
	if err != nil {
		return err
	}
	where, args, err := t.where(conds)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s%s", t.schema.Table, where)
	if _, err := t.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.schema.Table, err)
	}
	return nil
}

func (t *Table[T]) encode(v T) Record {
	r := t.codec.Encode(v)
	t.schema.Check(r)
	return r
}

func (t *Table[T]) keyConditions(key []any) ([]Condition, error) {
	if len(key) != len(t.schema.Key) {
		return nil, fmt.Errorf("%s key needs %d values, got %d", t.schema.Table, len(t.schema.Key), len(key))
	}
	conds := make([]Condition, len(key))
	for i, k := range t.schema.Key {
		conds[i] = Eq(k, key[i])
	}
	return conds, nil
}

func (t *Table[T]) where(conds []Condition) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}
	clauses := make([]string, len(conds))
	args := make([]any, len(conds))
	for i, c := range conds {
		name := Sanitize(c.Column)
		if t.schema.Index(name) < 0 {
			return "", nil, fmt.Errorf("unknown column %q on %s", c.Column, t.schema.Table)
		}
		clauses[i] = fmt.Sprintf("%s = %s", name, t.dialect.Placeholder(i+1))
		args[i] = c.Value
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func (t *Table[T]) scan(rows *sql.Rows) (Record, error) {
	dest := make([]any, len(t.schema.Columns))
	for i, c := range t.schema.Columns {
		switch c.Kind {
		case KindInteger:
			dest[i] = new(int64)
		case KindBoolean:
			dest[i] = new(bool)
		case KindReal:
			dest[i] = new(float64)
		default:
			dest[i] = new(string)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	r := make(Record, len(dest))
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			r[i] = *p
		case *bool:
			r[i] = *p
		case *float64:
			r[i] = *p
		case *string:
			r[i] = *p
		default:
			return nil, errors.New("unsupported destination")
		}
	}
	return r, nil
}
