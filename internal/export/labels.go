package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/barcut/barcut/internal/model"
)

// LabelInfo holds the data encoded into each bundle label's QR code.
type LabelInfo struct {
	ResultID       string  `json:"id"`
	Diameter       float64 `json:"diameter_mm"`
	Target         float64 `json:"target_m"`
	Combination    string  `json:"combination"`
	Quantity       int     `json:"quantity"`
	CombinedLength float64 `json:"combined_m"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded bundle labels, one per cutting
// combination. Each label shows the diameter, target length and combination
// recipe, plus a QR code encoding the bundle metadata as JSON. Labels are
// laid out on a standard label sheet format (Avery 5160 / 3 columns x 10
// rows on US Letter).
func ExportLabels(path string, plans []model.CutPlan) error {
	labels := CollectLabelInfos(plans)
	if len(labels) == 0 {
		return fmt.Errorf("no combinations to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label %q: %w", label.ResultID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single bundle label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.ResultID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	title := fmt.Sprintf("D%.0f  %.2f m", info.Diameter, info.Target)
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Combination recipe, truncated if too long
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	combo := info.Combination
	if pdf.GetStringWidth(combo) > textW {
		for len(combo) > 0 && pdf.GetStringWidth(combo+"...") > textW {
			combo = combo[:len(combo)-1]
		}
		combo += "..."
	}
	pdf.CellFormat(textW, 3.5, combo, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	detail := fmt.Sprintf("%d bundles @ %.2f m", info.Quantity, info.CombinedLength)
	pdf.CellFormat(textW, 3, detail, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, info.ResultID, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a set of cut plans for
// use in testing or alternative export formats.
func CollectLabelInfos(plans []model.CutPlan) []LabelInfo {
	var labels []LabelInfo
	for _, plan := range plans {
		for _, r := range plan.Results {
			labels = append(labels, LabelInfo{
				ResultID:       r.ID,
				Diameter:       plan.Diameter,
				Target:         r.Target,
				Combination:    r.FormatCombination(),
				Quantity:       r.Quantity,
				CombinedLength: r.CombinedLength,
			})
		}
	}
	return labels
}
