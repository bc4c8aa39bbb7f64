package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaniusrb/voxi-core/internal/cli"
	"github.com/vaniusrb/voxi-core/internal/ui"
	"github.com/vaniusrb/voxi-core/pkg/querydef"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

var (
	validateFile       string
	validateQueriesDir string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate query definitions",
	Long:  `Load every query definition, then build and render each query.`,
	Example: `  # Validate the configured queries directory
  voxi validate

  # Validate a single file
  voxi validate -f queries/orders.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ResolvedQueriesDir(validateQueriesDir)

		defs, err := loadDefinitions(appFs, validateFile, dir)
		if err != nil {
			return err
		}
		return validateDefinitions(cmd.OutOrStdout(), defs, quiet)
	},
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFile, "file", "f", "", "definition file (default: every file in queries_dir)")
	f.StringVar(&validateQueriesDir, "queries", "", "queries directory")
}

// validateDefinitions builds and renders every query, stopping at the first
// failure.
func validateDefinitions(w io.Writer, defs *querydef.File, quiet bool) error {
	summaries := make([]string, 0, len(defs.Queries))
	for _, q := range defs.Queries {
		sel, err := q.Build()
		if err != nil {
			return cli.DefinitionError("invalid definition", err)
		}
		if _, err := resolvers.ArgsToStr(sel); err != nil {
			return cli.DefinitionError(fmt.Sprintf("rendering query %q", q.Name), err)
		}
		summaries = append(summaries, fmt.Sprintf("%s (%d columns, tables: %s)",
			q.Name, len(sel.Columns()), strings.Join(sel.TableNameStrings(), ", ")))
	}

	if quiet {
		return nil
	}
	if len(summaries) == 0 {
		ui.Warning(w, "No queries defined")
		return nil
	}
	ui.Success(w, "Definitions are valid. Found %d queries:", len(summaries))
	ui.List(w, summaries)
	return nil
}
