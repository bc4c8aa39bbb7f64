// Package doctor provides health checks for voxi query definitions.
//
// The doctor command validates that every query definition loads, builds and
// renders, and, when a database is available, that the referenced tables
// exist and that each rendered statement prepares cleanly. Statements are
// never executed.
//
// Example usage:
//
//	d := doctor.New(db, doctor.DialectPostgres, afero.NewOsFs(), "queries")
//	report, err := d.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/vaniusrb/voxi-core/pkg/querydef"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/selections"
)

// Check categories.
const (
	CategoryDefinitions = "Definitions"
	CategoryDatabase    = "Database"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates a critical issue that will cause failures.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

func (s Status) color() *color.Color {
	switch s {
	case StatusPass:
		return color.New(color.FgGreen)
	case StatusWarn:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "Definitions", "Database").
	Category string

	// Name is a short identifier for the check.
	Name string

	// Status is the check outcome.
	Status Status

	// Message is a human-readable description of the result.
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	// Summary counts.
	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Check returns the first check with the given name.
func (r *Report) Check(name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	heading := color.New(color.Bold)

	// Group checks by category
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", heading.Sprint(cat))
		for _, check := range categories[cat] {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check.Status.color().Sprint(check.Status.Symbol()), check.Message)
			if verbose && check.Details != "" {
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Queryer is the subset of *sql.DB the doctor needs.
type Queryer interface {
	PingContext(ctx context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// statement is a query definition rendered for the target dialect.
type statement struct {
	name   string
	sql    string
	args   []any
	tables []string
}

// Doctor performs health checks on query definitions.
type Doctor struct {
	db         Queryer
	dialect    Dialect
	fs         afero.Fs
	queriesDir string

	// Populated during Run
	statements []statement
}

// New creates a new Doctor instance. db may be nil, in which case only the
// definition checks run.
func New(db Queryer, dialect Dialect, fs afero.Fs, queriesDir string) *Doctor {
	return &Doctor{
		db:         db,
		dialect:    dialect,
		fs:         fs,
		queriesDir: queriesDir,
	}
}

// Run executes all health checks and returns a report.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	d.checkDefinitions(report)

	if d.db == nil {
		report.AddCheck(CheckResult{
			Category: CategoryDatabase,
			Name:     "connection",
			Status:   StatusWarn,
			Message:  "No database configured, database checks skipped",
			FixHint:  "Set database.url in voxi.yaml or pass --db",
		})
		return report, nil
	}

	connected := d.checkConnection(ctx, report)
	if !connected {
		return report, nil
	}
	if err := d.checkTables(ctx, report); err != nil {
		return nil, fmt.Errorf("checking tables: %w", err)
	}
	d.checkStatements(ctx, report)

	return report, nil
}

// checkDefinitions loads the definition files and renders every query.
func (d *Doctor) checkDefinitions(report *Report) {
	files, err := querydef.DefinitionFiles(d.fs, d.queriesDir)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryDefinitions,
			Name:     "files",
			Status:   StatusFail,
			Message:  fmt.Sprintf("Queries directory not readable at %s", d.queriesDir),
			Details:  err.Error(),
			FixHint:  "Set queries_dir in voxi.yaml or pass --queries",
		})
		return
	}
	if len(files) == 0 {
		report.AddCheck(CheckResult{
			Category: CategoryDefinitions,
			Name:     "files",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("No definition files in %s", d.queriesDir),
			FixHint:  "Add *.yaml query definition files",
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: CategoryDefinitions,
		Name:     "files",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Found %d definition file(s) in %s", len(files), d.queriesDir),
		Details:  strings.Join(files, "\n"),
	})

	defs, err := querydef.LoadDir(d.fs, d.queriesDir)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryDefinitions,
			Name:     "load",
			Status:   StatusFail,
			Message:  "Definitions failed to load",
			Details:  err.Error(),
			FixHint:  "Run 'voxi validate' to see detailed errors",
		})
		return
	}

	report.AddCheck(CheckResult{
		Category: CategoryDefinitions,
		Name:     "load",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Loaded %d queries", len(defs.Queries)),
	})

	for _, q := range defs.Queries {
		d.checkQuery(report, q)
	}
}

func (d *Doctor) checkQuery(report *Report, q *querydef.QueryDef) {
	name := "render:" + q.Name

	sel, err := q.Build()
	if err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryDefinitions,
			Name:     name,
			Status:   StatusFail,
			Message:  fmt.Sprintf("Query %s does not build", q.Name),
			Details:  err.Error(),
			FixHint:  "Fix the definition at the path shown in the details",
		})
		return
	}

	sqlText, args, err := resolvers.ArgsToParams(sel, d.dialect.Placeholder(), nil)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryDefinitions,
			Name:     name,
			Status:   StatusFail,
			Message:  fmt.Sprintf("Query %s does not render", q.Name),
			Details:  err.Error(),
			FixHint:  "Declare every bind the query uses under binds",
		})
		return
	}

	d.statements = append(d.statements, statement{
		name:   q.Name,
		sql:    sqlText,
		args:   args,
		tables: sourceTables(sel),
	})

	report.AddCheck(CheckResult{
		Category: CategoryDefinitions,
		Name:     name,
		Status:   StatusPass,
		Message:  fmt.Sprintf("Query %s renders (%d args)", q.Name, len(args)),
		Details:  sqlText,
	})
}

func (d *Doctor) checkConnection(ctx context.Context, report *Report) bool {
	if err := d.db.PingContext(ctx); err != nil {
		report.AddCheck(CheckResult{
			Category: CategoryDatabase,
			Name:     "connection",
			Status:   StatusFail,
			Message:  "Cannot connect to database",
			Details:  err.Error(),
			FixHint:  "Check database.url in voxi.yaml or the --db flag",
		})
		return false
	}

	report.AddCheck(CheckResult{
		Category: CategoryDatabase,
		Name:     "connection",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Connected to %s database", d.dialect),
	})
	return true
}

// checkTables verifies that every table named as a FROM or JOIN source exists.
func (d *Doctor) checkTables(ctx context.Context, report *Report) error {
	seen := make(map[string]bool)
	var tables []string
	for _, st := range d.statements {
		for _, t := range st.tables {
			if !seen[t] {
				seen[t] = true
				tables = append(tables, t)
			}
		}
	}
	if len(tables) == 0 {
		return nil
	}
	sort.Strings(tables)

	var missing []string
	for _, t := range tables {
		var count int64
		if err := d.db.QueryRowContext(ctx, d.dialect.tableExistsQuery(), t).Scan(&count); err != nil {
			return fmt.Errorf("looking up table %s: %w", t, err)
		}
		if count == 0 {
			missing = append(missing, t)
		}
	}

	if len(missing) > 0 {
		report.AddCheck(CheckResult{
			Category: CategoryDatabase,
			Name:     "tables",
			Status:   StatusFail,
			Message:  fmt.Sprintf("%d of %d referenced tables missing", len(missing), len(tables)),
			Details:  strings.Join(missing, "\n"),
			FixHint:  "Create the missing tables or fix the table names in the definitions",
		})
		return nil
	}

	report.AddCheck(CheckResult{
		Category: CategoryDatabase,
		Name:     "tables",
		Status:   StatusPass,
		Message:  fmt.Sprintf("All %d referenced tables exist", len(tables)),
		Details:  strings.Join(tables, "\n"),
	})
	return nil
}

// checkStatements prepares every rendered statement without executing it.
func (d *Doctor) checkStatements(ctx context.Context, report *Report) {
	prepared := 0
	for _, st := range d.statements {
		stmt, err := d.db.PrepareContext(ctx, st.sql)
		if err != nil {
			report.AddCheck(CheckResult{
				Category: CategoryDatabase,
				Name:     "prepare:" + st.name,
				Status:   StatusFail,
				Message:  fmt.Sprintf("Query %s failed to prepare", st.name),
				Details:  fmt.Sprintf("%s\n%s", st.sql, err),
				FixHint:  "Check column and table names against the database schema",
			})
			continue
		}
		_ = stmt.Close()
		prepared++
	}

	if prepared > 0 {
		report.AddCheck(CheckResult{
			Category: CategoryDatabase,
			Name:     "prepare",
			Status:   StatusPass,
			Message:  fmt.Sprintf("%d of %d statements prepare cleanly", prepared, len(d.statements)),
		})
	}
}

// sourceTables lists the table names used as FROM and JOIN sources, including
// those of sub-query sources and combined queries.
func sourceTables(s *selections.Select) []string {
	var out []string
	var walk func(*selections.Select)
	visitSource := func(f selections.FromSelect) {
		if t, ok := f.Table(); ok {
			out = append(out, t.Name().String())
		} else if q := f.Query(); q != nil {
			walk(q)
		}
	}
	walk = func(s *selections.Select) {
		for _, f := range s.From() {
			visitSource(f)
		}
		for _, j := range s.Joins() {
			visitSource(j.From())
		}
		if c, ok := s.Combination(); ok {
			walk(c.Query())
		}
	}
	walk(s)
	return out
}
