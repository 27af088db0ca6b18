// Package main provides the entry point for the barcut CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barcut/barcut/cmd/barcut/commands"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "barcut",
		Short: "Barcut - rebar cutting combination optimizer",
		Long: `Barcut finds cutting combinations that assemble inventory bar lengths
into commercial target lengths with minimal waste, per diameter group.

Commands:
  run       Optimize an inventory file and report cut plans
  compare   Run what-if scenarios side by side
  estimate  Estimate bar purchasing for a demand list`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewEstimateCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "barcut %s\n", version)
		},
	}
}
