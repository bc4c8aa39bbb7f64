package main

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/vaniusrb/voxi-core/internal/cli"
	"github.com/vaniusrb/voxi-core/pkg/querydef"
)

// appFs is the filesystem definition files are read from.
var appFs = afero.NewOsFs()

// loadDefinitions reads a single file when one is given, otherwise every
// definition file in dir.
func loadDefinitions(fs afero.Fs, file, dir string) (*querydef.File, error) {
	var (
		defs *querydef.File
		err  error
	)
	if file != "" {
		defs, err = querydef.LoadFile(fs, file)
	} else {
		defs, err = querydef.LoadDir(fs, dir)
	}
	if err != nil {
		return nil, cli.DefinitionError("loading definitions", err)
	}
	slog.Info("definitions loaded", "file", file, "dir", dir, "queries", len(defs.Queries))
	return defs, nil
}

// selectQueries returns the named queries, or all of them when names is empty.
func selectQueries(defs *querydef.File, names []string) ([]*querydef.QueryDef, error) {
	if len(names) == 0 {
		return defs.Queries, nil
	}
	queries := make([]*querydef.QueryDef, 0, len(names))
	for _, name := range names {
		q, err := defs.Find(name)
		if err != nil {
			return nil, cli.DefinitionError("selecting query", err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}
