package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barcut/barcut/internal/project"
)

// NewConfigCommand creates the config command, which prints the effective
// application configuration as JSON.
func NewConfigCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective application configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := project.LoadAppConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", configPath, data)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", project.DefaultConfigPath(), "application config file")
	return cmd
}
