package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/vaniusrb/voxi-core/internal/cli"
)

var configShowSource bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long:  `Show the effective configuration after merging defaults, config file, and environment variables.`,
	Example: `  # Show effective configuration
  voxi config show

  # Show configuration with source file path
  voxi config show --source`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeConfig(cmd.OutOrStdout(), cfg, configPath, configShowSource)
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowSource, "source", false, "show config file source")
	configCmd.AddCommand(configShowCmd)
}

// writeConfig prints c as YAML with the database password masked.
func writeConfig(w io.Writer, c *cli.Config, path string, source bool) error {
	if source {
		if path != "" {
			_, _ = fmt.Fprintf(w, "Config file: %s\n\n", path)
		} else {
			_, _ = fmt.Fprintln(w, "Config file: (none, using defaults)")
			_, _ = fmt.Fprintln(w)
		}
	}

	shown := *c
	if shown.Database.Password != "" {
		shown.Database.Password = "********"
	}

	out, err := yaml.Marshal(shown)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(w, string(out))
	return nil
}
