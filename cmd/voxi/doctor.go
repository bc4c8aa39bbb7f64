package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/vaniusrb/voxi-core/internal/cli"
	"github.com/vaniusrb/voxi-core/internal/doctor"
	"github.com/vaniusrb/voxi-core/internal/ui"
)

var (
	doctorDB         string
	doctorQueriesDir string
	doctorVerbose    bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks",
	Long: `Run health checks on query definitions.

Definitions are loaded, built and rendered. When a database is configured the
referenced tables are looked up and every statement is prepared, never
executed.`,
	Example: `  # Check definitions only
  voxi doctor

  # Check against a database
  voxi doctor --db postgres://localhost/mydb

  # Run with verbose output
  voxi doctor --db postgres://localhost/mydb --verbose`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ResolvedQueriesDir(resolveString(doctorQueriesDir, cfg.Doctor.QueriesDir))
		verboseFlag := resolveBool(doctorVerbose, cfg.Doctor.Verbose)

		driver, err := cfg.DriverName()
		if err != nil {
			return cli.ConfigError("database configuration", err)
		}

		var dsn string
		if doctorDB != "" || cfg.HasDatabase() {
			dsn, err = resolveDSN(doctorDB)
			if err != nil {
				return err
			}
		}

		return runDoctor(cmd.Context(), cmd.OutOrStdout(), appFs, driver, dsn, dir, verboseFlag)
	},
}

func init() {
	f := doctorCmd.Flags()
	f.StringVar(&doctorDB, "db", "", "database URL (sqlite3: file name)")
	f.StringVar(&doctorQueriesDir, "queries", "", "queries directory")
	f.BoolVar(&doctorVerbose, "verbose", false, "show detailed output")
}

// resolveDSN returns the --db flag or the configured connection string.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("database configuration", err)
	}
	if dsn == "" {
		return "", cli.ConfigError("database URL is required (use --db or set in config)", nil)
	}
	return dsn, nil
}

// runDoctor runs the checks and prints the report. An empty dsn runs the
// definition checks only.
func runDoctor(ctx context.Context, w io.Writer, fs afero.Fs, driver, dsn, dir string, verboseFlag bool) error {
	dialect, err := doctor.DialectForDriver(driver)
	if err != nil {
		return cli.ConfigError("database configuration", err)
	}

	var db doctor.Queryer
	if dsn != "" {
		sqlDB, err := sql.Open(driver, dsn)
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = sqlDB.Close() }()
		db = sqlDB
	}

	if !quiet {
		_, _ = fmt.Fprintln(w, ui.Title("voxi doctor - Health Check"))
	}
	slog.Info("running doctor", "driver", driver, "dialect", dialect.String(), "queries_dir", dir)

	report, err := doctor.New(db, dialect, fs, dir).Run(ctx)
	if err != nil {
		return cli.GeneralError("running doctor", err)
	}

	report.Print(w, verboseFlag)

	if report.HasErrors() {
		return cli.GeneralError("health checks failed", nil)
	}

	return nil
}
