package doctor

import (
	"fmt"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// Dialect selects the catalog queries and placeholder style for a database.
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

// DialectForDriver maps a database/sql driver name to its dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case "", "pgx", "postgres":
		return DialectPostgres, nil
	case "sqlite3", "sqlite":
		return DialectSQLite, nil
	}
	return 0, fmt.Errorf("no dialect for driver %q", driver)
}

func (d Dialect) String() string {
	if d == DialectSQLite {
		return "SQLite"
	}
	return "PostgreSQL"
}

// Placeholder returns the bind placeholder style the driver expects.
func (d Dialect) Placeholder() resolvers.PlaceholderStyle {
	if d == DialectSQLite {
		return resolvers.Question
	}
	return resolvers.Dollar
}

func (d Dialect) tableExistsQuery() string {
	if d == DialectSQLite {
		return `SELECT COUNT(*) FROM sqlite_master WHERE type IN ('table', 'view') AND name = ?`
	}
	return `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	`
}
