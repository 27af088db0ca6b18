package engine

import (
	"context"

	"github.com/barcut/barcut/internal/model"
)

// Scenario defines a named settings variant to compare.
type Scenario struct {
	Name     string
	Settings model.Settings
	Grouping model.GroupingOptions
}

// ScenarioResult holds the aggregate outcome for one scenario.
type ScenarioResult struct {
	Scenario          Scenario
	Stats             model.AggregateStats
	Plans             []model.CutPlan
	LeftoverPieces    int
	TerminatedEarly   int // diameters that hit a ceiling
	FinalToleranceMax float64
}

// CompareScenarios runs the full optimization once per scenario over the
// same inventory and targets, enabling side-by-side comparison of tolerance
// and rounding parameters. Scenarios are independent full runs; each builds
// its own manager so state never leaks between them.
func CompareScenarios(ctx context.Context, scenarios []Scenario, records []model.InventoryRecord, targets []float64) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(scenarios))

	for _, sc := range scenarios {
		mgr := NewManager()
		if err := mgr.Load(records, targets, sc.Settings, sc.Grouping); err != nil {
			return nil, err
		}
		mgr.RunAll(ctx, sc.Settings.Workers)

		plans := mgr.Plans()
		res := ScenarioResult{
			Scenario: sc,
			Stats:    mgr.TotalStats(),
			Plans:    plans,
		}
		for _, p := range plans {
			res.LeftoverPieces += p.LeftoverPieces()
			if p.Status == model.StatusTerminatedEarly {
				res.TerminatedEarly++
			}
			if p.FinalTolerance > res.FinalToleranceMax {
				res.FinalToleranceMax = p.FinalTolerance
			}
		}
		results = append(results, res)
	}
	return results, nil
}

// BuildDefaultScenarios generates what-if variants of the base settings:
// finer and coarser tolerance steps and rounded grouping.
func BuildDefaultScenarios(base model.Settings, grouping model.GroupingOptions) []Scenario {
	fine := base
	fine.ToleranceStep = base.ToleranceStep / 2
	coarse := base
	coarse.ToleranceStep = base.ToleranceStep * 2

	rounded := grouping
	rounded.ApplyRounding = true

	return []Scenario{
		{Name: "Current settings", Settings: base, Grouping: grouping},
		{Name: "Fine tolerance step", Settings: fine, Grouping: grouping},
		{Name: "Coarse tolerance step", Settings: coarse, Grouping: grouping},
		{Name: "Rounded lengths", Settings: base, Grouping: rounded},
	}
}
