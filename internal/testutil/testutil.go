// Package testutil provides shared database helpers for voxi tests.
//
// PostgreSQL databases come from a single testcontainers instance started on
// first use (or from DATABASE_URL when set). Each call gets its own freshly
// created database. SQLite databases are in-memory and need no setup.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Singleton container state
var (
	singletonOnce sync.Once
	singletonDSN  string
	singletonErr  error
)

// ensureSingleton lazily starts the shared PostgreSQL container.
// Safe for concurrent access via sync.Once.
func ensureSingleton() (string, error) {
	singletonOnce.Do(func() {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			singletonDSN = url
			return
		}

		ctx := context.Background()
		container, err := postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("postgres"),
			postgres.WithUsername("test"),
			postgres.WithPassword("test"),
			testcontainers.WithEnv(map[string]string{
				"POSTGRES_INITDB_ARGS": "--auth-host=trust",
			}),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			singletonErr = fmt.Errorf("failed to start PostgreSQL container: %w", err)
			return
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = container.Terminate(ctx)
			singletonErr = fmt.Errorf("failed to get PostgreSQL connection string: %w", err)
			return
		}

		singletonDSN = dsn
		// Container is not stored - ryuk will handle cleanup automatically
	})

	return singletonDSN, singletonErr
}

// PostgresDB returns a connection to a new, empty PostgreSQL database. The
// test is skipped under -short or when no container can be started.
func PostgresDB(tb testing.TB) *sql.DB {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping PostgreSQL test in short mode")
	}

	adminDSN, err := ensureSingleton()
	if err != nil {
		tb.Skipf("PostgreSQL unavailable: %v", err)
	}

	dbName := uniqueDBName("voxi")
	require.NoError(tb, exec(adminDSN, "CREATE DATABASE "+dbName), "failed to create test database")

	db, err := sql.Open("pgx", replaceDBName(adminDSN, dbName))
	require.NoError(tb, err, "failed to connect to test database")
	require.NoError(tb, db.Ping(), "failed to ping test database")

	tb.Cleanup(func() {
		_ = db.Close()

		// Drop database in background
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = exec(adminDSN, fmt.Sprintf(`
				SELECT pg_terminate_backend(pid)
				FROM pg_stat_activity
				WHERE datname = '%s' AND pid <> pg_backend_pid()
			`, dbName))
			_ = execContext(ctx, adminDSN, "DROP DATABASE IF EXISTS "+dbName)
		}()
	})

	return db
}

// SQLiteDB returns an in-memory SQLite database. The pool is limited to one
// connection so every statement sees the same database.
func SQLiteDB(tb testing.TB) *sql.DB {
	tb.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(tb, err, "failed to open SQLite database")
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = db.Close() })

	return db
}

// Exec runs each statement against db and fails the test on error.
func Exec(tb testing.TB, db *sql.DB, stmts ...string) {
	tb.Helper()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(tb, err, "executing %q", stmt)
	}
}

func exec(dsn, stmt string) error {
	return execContext(context.Background(), dsn, stmt)
}

func execContext(ctx context.Context, dsn, stmt string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, stmt)
	return err
}

// uniqueDBName generates a unique database name with the given prefix.
func uniqueDBName(prefix string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}

// replaceDBName replaces the database name in a postgres:// DSN.
func replaceDBName(dsn, newDB string) string {
	rest := ""
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn, rest = dsn[:i], dsn[i:]
	}
	if i := strings.LastIndexByte(dsn, '/'); i >= 0 {
		return dsn[:i+1] + newDB + rest
	}
	return dsn
}
