package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vaniusrb/voxi-core/internal/cli"
	"github.com/vaniusrb/voxi-core/internal/ui"
	"github.com/vaniusrb/voxi-core/pkg/querydef"
)

var (
	tablesFile       string
	tablesQueriesDir string
)

var tablesCmd = &cobra.Command{
	Use:   "tables [query...]",
	Short: "List the tables queries read from",
	Long: `List the tables referenced by each query's columns, WHERE clause and FROM
sources. Join sources are not listed.`,
	Example: `  # List tables for every query
  voxi tables

  # List tables for one query
  voxi tables active_orders`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ResolvedQueriesDir(tablesQueriesDir)

		defs, err := loadDefinitions(appFs, tablesFile, dir)
		if err != nil {
			return err
		}
		queries, err := selectQueries(defs, args)
		if err != nil {
			return err
		}
		return writeTables(cmd.OutOrStdout(), queries)
	},
}

func init() {
	f := tablesCmd.Flags()
	f.StringVarP(&tablesFile, "file", "f", "", "definition file (default: every file in queries_dir)")
	f.StringVar(&tablesQueriesDir, "queries", "", "queries directory")
}

func writeTables(w io.Writer, queries []*querydef.QueryDef) error {
	for _, q := range queries {
		sel, err := q.Build()
		if err != nil {
			return cli.DefinitionError("building query", err)
		}
		_, _ = fmt.Fprintln(w, ui.Title(q.Name))
		names := sel.TableNameStrings()
		if len(names) == 0 {
			_, _ = fmt.Fprintln(w, ui.Secondary("  (none)"))
			continue
		}
		ui.List(w, names)
	}
	return nil
}
