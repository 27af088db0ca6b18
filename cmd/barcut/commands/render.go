package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/barcut/barcut/internal/engine"
	"github.com/barcut/barcut/internal/model"
)

// renderSummaryTable writes the cross-diameter totals table.
func renderSummaryTable(w io.Writer, summaries []model.DiameterSummary, stats model.AggregateStats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Diameter", "Weight (kg)", "Waste (kg)", "Waste %", "Commercial", "Leftover"})

	for _, s := range summaries {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("%.0f mm", s.Diameter),
			fmt.Sprintf("%.2f", s.TotalWeight),
			fmt.Sprintf("%.2f", s.Waste),
			fmt.Sprintf("%.2f", s.WastePercentage),
			s.CommercialPieces,
			s.LeftoverPieces,
		})
	}
	tbl.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%.2f", stats.TotalWeight),
		fmt.Sprintf("%.2f", stats.TotalWaste),
		fmt.Sprintf("%.2f", stats.WastePercentage),
		stats.CommercialPieces,
		"",
	})
	tbl.Render()
}

// renderPlanTable writes one diameter's combinations.
func renderPlanTable(w io.Writer, plan model.CutPlan) {
	fmt.Fprintf(w, "\nDiameter %.0f mm", plan.Diameter)
	if plan.Status == model.StatusTerminatedEarly {
		fmt.Fprintf(w, " (terminated at tolerance %.2f m, stock exhausted for remaining targets)", plan.FinalTolerance)
	}
	fmt.Fprintln(w)

	if len(plan.Results) == 0 {
		fmt.Fprintln(w, "  no combinations found")
	} else {
		tbl := table.NewWriter()
		tbl.SetOutputMirror(w)
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"#", "Target (m)", "Combination", "Combined (m)", "Qty", "Waste (kg)"})
		for i, r := range plan.Results {
			tbl.AppendRow(table.Row{
				i + 1,
				fmt.Sprintf("%.2f", r.Target),
				r.FormatCombination(),
				fmt.Sprintf("%.2f", r.CombinedLength),
				r.Quantity,
				fmt.Sprintf("%.2f", r.Waste),
			})
		}
		tbl.Render()
	}

	if len(plan.Leftover) > 0 {
		fmt.Fprintf(w, "  leftover: ")
		for i, l := range plan.Leftover {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprintf(w, "%d x %.2f m", l.Pieces, l.Length)
		}
		fmt.Fprintln(w)
	}
}

// renderScenarioTable writes the side-by-side scenario comparison.
func renderScenarioTable(w io.Writer, results []engine.ScenarioResult) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Scenario", "Waste (kg)", "Waste %", "Commercial", "Leftover", "Max Tol (m)", "Ceilings Hit"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.Scenario.Name,
			fmt.Sprintf("%.2f", r.Stats.TotalWaste),
			fmt.Sprintf("%.2f", r.Stats.WastePercentage),
			r.Stats.CommercialPieces,
			r.LeftoverPieces,
			fmt.Sprintf("%.2f", r.FinalToleranceMax),
			r.TerminatedEarly,
		})
	}
	tbl.Render()
}

// renderEstimate writes a purchase estimate.
func renderEstimate(w io.Writer, diameter float64, est model.PurchaseEstimate) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendRow(table.Row{"Diameter", fmt.Sprintf("%.0f mm", diameter)})
	tbl.AppendRow(table.Row{"Demand length", fmt.Sprintf("%.2f m", est.TotalDemandLength)})
	tbl.AppendRow(table.Row{"Bar length", fmt.Sprintf("%.2f m", est.BarLength)})
	tbl.AppendRow(table.Row{"Bars (exact)", fmt.Sprintf("%.2f", est.BarsNeededExact)})
	tbl.AppendRow(table.Row{"Bars (minimum)", est.BarsNeededMin})
	tbl.AppendRow(table.Row{"Bars (with waste)", fmt.Sprintf("%d (+%.0f%%)", est.BarsWithWaste, est.WastePercent)})
	tbl.AppendRow(table.Row{"Total weight", fmt.Sprintf("%.2f kg", est.TotalWeight)})
	if est.PricePerTonne > 0 {
		tbl.AppendRow(table.Row{"Estimated cost", fmt.Sprintf("%.2f", est.EstimatedCost)})
	}
	tbl.Render()
}
