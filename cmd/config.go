package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/breathe/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after merging defaults, the config file,
BREATHE_* environment variables and command-line flags.

Example:
  breathe config               # Effective settings
  breathe config --template    # Commented default config file`,
	RunE: runConfig,
}

var configTemplate bool

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configTemplate, "template", false, "print the commented default config instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if configTemplate {
		_, err := fmt.Fprint(out, config.DefaultConfigTemplate())
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		if _, err := fmt.Fprintf(out, "# %s\n", cfgPath); err != nil {
			return err
		}
	}
	_, err = out.Write(data)
	return err
}
