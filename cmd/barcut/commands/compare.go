package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/barcut/barcut/internal/engine"
	"github.com/barcut/barcut/internal/importer"
	"github.com/barcut/barcut/internal/project"
)

// NewCompareCommand creates the compare command: run what-if variants of the
// tolerance and rounding parameters over the same inventory.
func NewCompareCommand() *cobra.Command {
	var (
		input       string
		targetsFlag string
		flags       settingsFlags
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run what-if scenarios side by side",
		Long: `Compare runs the optimization once per scenario (current settings,
finer and coarser tolerance steps, rounded grouping) and prints the
aggregate waste of each, so parameter choices can be judged before
committing to a cut plan.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := project.LoadAppConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			targets := cfg.Targets
			if targetsFlag != "" {
				if targets, err = parseTargets(targetsFlag); err != nil {
					return err
				}
			}
			settings, grouping := flags.apply(cfg.Settings, cfg.Grouping)

			imported := importer.Import(input)
			if len(imported.Errors) > 0 {
				return fmt.Errorf("inventory import failed: %s", imported.Errors[0])
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			scenarios := engine.BuildDefaultScenarios(settings, grouping)
			results, err := engine.CompareScenarios(ctx, scenarios, imported.Records, targets)
			if err != nil {
				return err
			}

			renderScenarioTable(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "inventory file (CSV or Excel)")
	cmd.Flags().StringVarP(&targetsFlag, "targets", "t", "", "comma-separated target lengths in metres")
	addSettingsFlags(cmd, &flags)
	cmd.Flags().StringVar(&configPath, "config", project.DefaultConfigPath(), "application config file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
