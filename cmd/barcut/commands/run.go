package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/barcut/barcut/internal/engine"
	"github.com/barcut/barcut/internal/export"
	"github.com/barcut/barcut/internal/importer"
	"github.com/barcut/barcut/internal/project"
)

// NewRunCommand creates the run command: import an inventory file, optimize
// every diameter group and report the resulting cut plans.
func NewRunCommand() *cobra.Command {
	var (
		input       string
		targetsFlag string
		stockpiles  []string
		flags       settingsFlags
		verbose     bool
		xlsxPath    string
		pdfPath     string
		labelsPath  string
		savePath    string
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize an inventory file and report cut plans",
		Long: `Run imports an inventory file (CSV or Excel with length, pieces and
diameter columns), groups it by diameter, and searches for cutting
combinations that assemble the stock into commercial target lengths.

Stockpile demand files can be attached per diameter with repeated
--stockpile flags, e.g. --stockpile 12=site-demand.csv. Demanded lengths
are served before the regular target cycle, most recent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(verbose)

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
			for _, w := range imported.Warnings {
				logger.Warn("import warning", "detail", w)
			}
			if len(imported.Errors) > 0 {
				for _, e := range imported.Errors {
					logger.Error("import error", "detail", e)
				}
				return fmt.Errorf("inventory import failed with %d errors", len(imported.Errors))
			}
			logger.Info("inventory imported", "file", input, "records", len(imported.Records))

			mgr := engine.NewManager()
			if err := mgr.Load(imported.Records, targets, settings, grouping); err != nil {
				return err
			}

			for _, spec := range stockpiles {
				diameter, path, err := parseStockpileSpec(spec)
				if err != nil {
					return err
				}
				sp := importer.ImportStockpile(path)
				if len(sp.Errors) > 0 {
					return fmt.Errorf("stockpile import %s: %s", path, sp.Errors[0])
				}
				if err := mgr.AddStockpile(diameter, sp.Records); err != nil {
					return err
				}
				logger.Info("stockpile attached", "diameter", diameter, "records", len(sp.Records))
			}

			for _, d := range mgr.Diameters() {
				mgr.Engine(d).SetLogger(logger)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			mgr.RunAll(ctx, settings.Workers)

			out := cmd.OutOrStdout()
			renderSummaryTable(out, mgr.Summary(), mgr.TotalStats())
			for _, plan := range mgr.Plans() {
				renderPlanTable(out, plan)
			}

			plans := mgr.Plans()
			if xlsxPath != "" {
				if err := export.ExportExcel(xlsxPath, plans); err != nil {
					return fmt.Errorf("excel export: %w", err)
				}
				logger.Info("workbook written", "file", xlsxPath)
			}
			if pdfPath != "" {
				if err := export.ExportPDF(pdfPath, plans); err != nil {
					return fmt.Errorf("pdf export: %w", err)
				}
				logger.Info("report written", "file", pdfPath)
			}
			if labelsPath != "" {
				if err := export.ExportLabels(labelsPath, plans); err != nil {
					return fmt.Errorf("label export: %w", err)
				}
				logger.Info("labels written", "file", labelsPath)
			}

			if savePath != "" {
				p := project.NewProject(projectName(savePath))
				p.Records = imported.Records
				p.Targets = targets
				p.Settings = settings
				p.Grouping = grouping
				for _, spec := range stockpiles {
					diameter, path, _ := parseStockpileSpec(spec)
					sp := importer.ImportStockpile(path)
					p.SetStockpile(diameter, sp.Records)
				}
				if err := project.SaveProject(savePath, p); err != nil {
					return fmt.Errorf("failed to save project: %w", err)
				}
				cfg.AddRecentProject(savePath)
				logger.Info("project saved", "file", savePath)
			}

			cfg.LastImportDir = filepath.Dir(input)
			if err := project.SaveAppConfig(configPath, cfg); err != nil {
				logger.Warn("failed to persist config", "error", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "inventory file (CSV or Excel)")
	cmd.Flags().StringVarP(&targetsFlag, "targets", "t", "", "comma-separated target lengths in metres (default from config)")
	cmd.Flags().StringArrayVar(&stockpiles, "stockpile", nil, "stockpile demand file per diameter, as diameter=path (repeatable)")
	addSettingsFlags(cmd, &flags)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an Excel workbook of the cut plans")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF cutting report")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "write a PDF sheet of QR bundle labels")
	cmd.Flags().StringVar(&savePath, "save", "", "save the session as a project file")
	cmd.Flags().StringVar(&configPath, "config", project.DefaultConfigPath(), "application config file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// addSettingsFlags registers the shared optimization tuning flags.
func addSettingsFlags(cmd *cobra.Command, f *settingsFlags) {
	cmd.Flags().Float64Var(&f.Tolerance, "tolerance", -1, "initial waste tolerance in metres (default from config)")
	cmd.Flags().Float64Var(&f.ToleranceStep, "step", 0, "tolerance escalation step in metres (default from config)")
	cmd.Flags().Float64Var(&f.MaxTolerance, "max-tolerance", -1, "tolerance ceiling in metres, 0 = largest target")
	cmd.Flags().IntVar(&f.MaxIterations, "max-iterations", 0, "hard cap on search iterations per diameter")
	cmd.Flags().IntVar(&f.Workers, "workers", 0, "diameter groups optimized in parallel")
	cmd.Flags().BoolVar(&f.Round, "round", false, "round lengths before grouping")
	cmd.Flags().IntVar(&f.Decimals, "decimals", -1, "decimal places for rounding")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func projectName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
