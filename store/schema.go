package store

import (
	"fmt"
	"strings"
)

// ColumnKind is the portable type of a column
type ColumnKind string

const (
	KindInteger ColumnKind = "integer"
	KindText    ColumnKind = "text"
	KindBoolean ColumnKind = "boolean"
	KindReal    ColumnKind = "real"
)

// Column describes one column of a fixed-width record
type Column struct {
	Name    string
	Kind    ColumnKind
	Default string // SQL literal used by EnsureTable
}

// Int declares a BIGINT column defaulting to 0
func Int(name string) Column {
	return Column{Name: name, Kind: KindInteger, Default: "0"}
}

// Text declares a TEXT column defaulting to ''
func Text(name string) Column {
	return Column{Name: name, Kind: KindText, Default: QuoteLiteral("")}
}

// Bool declares a BOOLEAN column defaulting to FALSE
func Bool(name string) Column {
	return Column{Name: name, Kind: KindBoolean, Default: "FALSE"}
}

// Real declares a floating point column defaulting to 0
func Real(name string) Column {
	return Column{Name: name, Kind: KindReal, Default: "0"}
}

// JSON declares a TEXT column holding a JSON document, defaulting to empty
func JSON(name, empty string) Column {
	return Column{Name: name, Kind: KindText, Default: QuoteLiteral(empty)}
}

// Schema is the descriptor of one entity kind's table: its name, its columns in
// codec order and the columns forming the primary key
type Schema struct {
	Table   string
	Columns []Column
	Key     []string
}

// NewSchema builds a schema with sanitized names. It panics when a key column
// is not among the columns since that is a programming mistake.
func NewSchema(table string, key []string, columns ...Column) Schema {
	s := Schema{Table: Sanitize(table)}
	for _, c := range columns {
		c.Name = Sanitize(c.Name)
		s.Columns = append(s.Columns, c)
	}
	for _, k := range key {
		k = Sanitize(k)
		if s.Index(k) < 0 {
			panic(fmt.Sprintf("store: key column %q not in schema %q", k, s.Table))
		}
		s.Key = append(s.Key, k)
	}
	if s.Table == "" || len(s.Key) == 0 {
		panic(fmt.Sprintf("store: schema %q needs a table name and a key", table))
	}
	return s
}

// Index returns the position of a column, or -1
func (s Schema) Index(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// IsKey reports whether the column is part of the primary key
func (s Schema) IsKey(name string) bool {
	for _, k := range s.Key {
		if k == name {
			return true
		}
	}
	return false
}

// Width is the number of columns in a record
func (s Schema) Width() int {
	return len(s.Columns)
}

// Check panics when a record does not match the schema width
func (s Schema) Check(r Record) {
	if len(r) != len(s.Columns) {
		panic(fmt.Sprintf("store: %s record has %d fields, schema has %d", s.Table, len(r), len(s.Columns)))
	}
}

// Sanitize lower-cases a table or column name and drops everything outside [a-z0-9_]
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// QuoteLiteral wraps a string in single quotes, doubling embedded quotes
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
