package database

import "strconv"

// Dialect identifies the SQL flavour behind a DB
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Placeholder returns the bind marker for the n-th (1-based) parameter
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// ColumnType maps a portable column kind to the dialect's type name
func (d Dialect) ColumnType(kind string) string {
	switch kind {
	case "integer":
		return "BIGINT"
	case "real":
		return "DOUBLE PRECISION"
	case "boolean":
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}
