// Package export writes cut optimization results to Excel workbooks, PDF
// reports and QR-coded bundle labels.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/barcut/barcut/internal/model"
)

// ExportExcel writes a results workbook: a Summary sheet with one row per
// diameter plus a TOTAL row, and one detail sheet per diameter listing every
// applied combination and any unplaceable leftover.
func ExportExcel(path string, plans []model.CutPlan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no plans to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummarySheet(f, plans, headerStyle); err != nil {
		return err
	}
	for _, plan := range plans {
		if err := writeDiameterSheet(f, plan, headerStyle); err != nil {
			return err
		}
	}

	// The default sheet was renamed to Summary by writeSummarySheet.
	idx, err := f.GetSheetIndex("Summary")
	if err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, plans []model.CutPlan, headerStyle int) error {
	const sheet = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	header := []interface{}{"Diameter (mm)", "Total Weight (kg)", "Waste (kg)", "Waste %", "Commercial Pieces", "Leftover Pieces"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, plan := range plans {
		s := plan.Summary()
		values := []interface{}{s.Diameter, s.TotalWeight, s.Waste, s.WastePercentage, s.CommercialPieces, s.LeftoverPieces}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	stats := model.Aggregate(plans)
	total := []interface{}{"TOTAL", stats.TotalWeight, stats.TotalWaste, stats.WastePercentage, stats.CommercialPieces, ""}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &total); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), headerStyle)
}

func writeDiameterSheet(f *excelize.File, plan model.CutPlan, headerStyle int) error {
	sheet := fmt.Sprintf("D%.0f", plan.Diameter)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"#", "Target (m)", "Combination", "Combined (m)", "Quantity", "Waste (kg)"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return err
	}

	row := 2
	for i, r := range plan.Results {
		values := []interface{}{
			i + 1,
			r.Target,
			r.FormatCombination(),
			model.Round2(r.CombinedLength),
			r.Quantity,
			r.Waste,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	if len(plan.Leftover) > 0 {
		row++
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Unplaceable leftover"); err != nil {
			return err
		}
		row++
		for _, l := range plan.Leftover {
			values := []interface{}{"", l.Length, "", "", l.Pieces, ""}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
				return err
			}
			row++
		}
	}

	if plan.Status == model.StatusTerminatedEarly {
		row++
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Run terminated early at tolerance ceiling"); err != nil {
			return err
		}
	}

	// Widen the combination column for readability.
	return f.SetColWidth(sheet, "C", "C", 32)
}
