package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vaniusrb/voxi-core/internal/cli"
	"github.com/vaniusrb/voxi-core/internal/ui"
	"github.com/vaniusrb/voxi-core/pkg/querydef"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

var (
	renderFile        string
	renderQueriesDir  string
	renderPlaceholder string
)

var renderCmd = &cobra.Command{
	Use:   "render [query...]",
	Short: "Render queries to SQL",
	Long: `Render query definitions to SQL.

With --placeholder inline (the default) literals are written into the
statement. With dollar or question the statement uses positional parameters
and the arguments are listed after it.`,
	Example: `  # Render every query in the queries directory
  voxi render

  # Render one query from a file with $1 placeholders
  voxi render active_orders -f queries/orders.yaml --placeholder dollar`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ResolvedQueriesDir(renderQueriesDir)
		mode := resolveString(renderPlaceholder, cfg.Render.Placeholder)

		defs, err := loadDefinitions(appFs, renderFile, dir)
		if err != nil {
			return err
		}
		queries, err := selectQueries(defs, args)
		if err != nil {
			return err
		}
		return writeRendered(cmd.OutOrStdout(), queries, mode)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFile, "file", "f", "", "definition file (default: every file in queries_dir)")
	f.StringVar(&renderQueriesDir, "queries", "", "queries directory")
	f.StringVar(&renderPlaceholder, "placeholder", "", "inline, dollar or question")
}

// writeRendered writes each query as a commented name line followed by its
// statement. In placeholder mode the arguments follow in order.
func writeRendered(w io.Writer, queries []*querydef.QueryDef, mode string) error {
	style, inline, err := cli.Placeholder(mode)
	if err != nil {
		return cli.ConfigError("render.placeholder", err)
	}

	for i, q := range queries {
		sel, err := q.Build()
		if err != nil {
			return cli.DefinitionError("building query", err)
		}

		var (
			sqlText string
			params  []any
		)
		if inline {
			sqlText, err = resolvers.ArgsToStr(sel)
		} else {
			sqlText, params, err = resolvers.ArgsToParams(sel, style, nil)
		}
		if err != nil {
			return cli.DefinitionError(fmt.Sprintf("rendering query %q", q.Name), err)
		}

		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, ui.Title("-- "+q.Name))
		_, _ = fmt.Fprintf(w, "%s;\n", sqlText)
		for n, p := range params {
			_, _ = fmt.Fprintln(w, ui.Secondary(fmt.Sprintf("-- %d: %s", n+1, formatParam(p))))
		}
	}
	return nil
}

func formatParam(p any) string {
	switch v := p.(type) {
	case nil:
		return "NULL"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
