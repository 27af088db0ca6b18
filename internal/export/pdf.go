package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/barcut/barcut/internal/model"
)

// segmentColor represents an RGB color for a drawn bar segment.
type segmentColor struct {
	R, G, B int
}

// segmentColors cycles per stock length so equal lengths share a color
// within a page.
var segmentColors = []segmentColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	barHeight    = 8.0
	barSpacing   = 14.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF generates a PDF report of the cut plans. Each diameter gets its
// own page(s) with every combination drawn as a segmented bar scaled against
// the target length, followed by a cross-diameter summary page.
func ExportPDF(path string, plans []model.CutPlan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no plans to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, plan := range plans {
		renderPlanPages(pdf, plan)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plans)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPages draws one diameter's results, starting a new page whenever
// the drawing area fills up.
func renderPlanPages(pdf *fpdf.Fpdf, plan model.CutPlan) {
	maxTarget := 0.0
	for _, r := range plan.Results {
		if r.Target > maxTarget {
			maxTarget = r.Target
		}
		if r.CombinedLength > maxTarget {
			maxTarget = r.CombinedLength
		}
	}

	drawWidth := pageWidth - marginLeft - marginRight - 60.0 // room for labels
	y := pageHeight // force a page on the first result
	page := 0

	newPage := func() {
		pdf.AddPage()
		page++
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(marginLeft, marginTop)
		title := fmt.Sprintf("Diameter %.0f mm — %d combinations, %.1f%% waste",
			plan.Diameter, len(plan.Results), plan.WastePercentage())
		if page > 1 {
			title += fmt.Sprintf(" (page %d)", page)
		}
		pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")
		y = drawAreaTop
	}

	for i, r := range plan.Results {
		if y+barSpacing > pageHeight-marginBottom {
			newPage()
		}
		renderResultBar(pdf, r, i+1, y, drawWidth, maxTarget)
		y += barSpacing
	}

	if len(plan.Results) == 0 {
		newPage()
	}

	if len(plan.Leftover) > 0 {
		if y+barSpacing > pageHeight-marginBottom {
			newPage()
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(drawWidth, 6, fmt.Sprintf("Unplaceable leftover: %d pieces", plan.LeftoverPieces()), "", 0, "L", false, 0, "")
		y += 8
		pdf.SetFont("Helvetica", "", 9)
		for _, l := range plan.Leftover {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(drawWidth, 5, fmt.Sprintf("%d x %.2f m", l.Pieces, l.Length), "", 0, "L", false, 0, "")
			y += 6
		}
	}
}

// renderResultBar draws a single result as a horizontal bar: one colored
// segment per used stock piece, scaled so the target spans the draw width.
func renderResultBar(pdf *fpdf.Fpdf, r model.Result, num int, y, drawWidth, maxTarget float64) {
	if maxTarget <= 0 {
		return
	}
	scale := drawWidth / maxTarget

	// Target outline (the commercial length being approximated)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(marginLeft, y, r.Target*scale, barHeight, "D")

	// Segments for each stock piece in the combination
	x := marginLeft
	for i, count := range r.Combination {
		if count == 0 || i >= len(r.Lengths) {
			continue
		}
		col := segmentColors[i%len(segmentColors)]
		for n := 0; n < count; n++ {
			w := r.Lengths[i] * scale
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.2)
			pdf.Rect(x, y, w, barHeight, "FD")

			if w > 12 {
				pdf.SetFont("Helvetica", "", 7)
				pdf.SetTextColor(0, 0, 0)
				pdf.SetXY(x, y+barHeight/2-1.5)
				pdf.CellFormat(w, 3, fmt.Sprintf("%.2f", r.Lengths[i]), "", 0, "C", false, 0, "")
			}
			x += w
		}
	}

	// Right-hand annotation
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft+drawWidth+2, y+barHeight/2-2.5)
	label := fmt.Sprintf("#%d  %dx  %.2f/%.2f m", num, r.Quantity, r.CombinedLength, r.Target)
	pdf.CellFormat(56, 5, label, "", 0, "L", false, 0, "")
}

// renderSummaryPage draws the cross-diameter totals table.
func renderSummaryPage(pdf *fpdf.Fpdf, plans []model.CutPlan) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Summary", "", 0, "L", false, 0, "")

	colWidths := []float64{35, 45, 40, 30, 45, 40}
	headers := []string{"Diameter (mm)", "Total Weight (kg)", "Waste (kg)", "Waste %", "Commercial Pieces", "Leftover Pieces"}

	y := drawAreaTop
	x := marginLeft
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	for _, plan := range plans {
		s := plan.Summary()
		cells := []string{
			fmt.Sprintf("%.0f", s.Diameter),
			fmt.Sprintf("%.2f", s.TotalWeight),
			fmt.Sprintf("%.2f", s.Waste),
			fmt.Sprintf("%.2f", s.WastePercentage),
			fmt.Sprintf("%d", s.CommercialPieces),
			fmt.Sprintf("%d", s.LeftoverPieces),
		}
		x = marginLeft
		for i, c := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], 7, c, "1", 0, "C", false, 0, "")
			x += colWidths[i]
		}
		y += 7
	}

	stats := model.Aggregate(plans)
	totals := []string{
		"TOTAL",
		fmt.Sprintf("%.2f", stats.TotalWeight),
		fmt.Sprintf("%.2f", stats.TotalWaste),
		fmt.Sprintf("%.2f", stats.WastePercentage),
		fmt.Sprintf("%d", stats.CommercialPieces),
		"",
	}
	x = marginLeft
	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range totals {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 8, c, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
}
