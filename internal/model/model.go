package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Validation errors returned before any engine state is created.
var (
	ErrInvalidLength   = errors.New("length must be positive")
	ErrInvalidDiameter = errors.New("diameter must be positive")
	ErrInvalidPieces   = errors.New("pieces must not be negative")
	ErrNoTargets       = errors.New("at least one target length is required")
	ErrNoStock         = errors.New("at least one stock item is required")
)

// InventoryRecord is a single raw input row: a stock bar length with its
// available piece count, scoped to one bar diameter.
type InventoryRecord struct {
	Length   float64 `json:"length"`   // m
	Pieces   int     `json:"pieces"`   // available pieces
	Diameter float64 `json:"diameter"` // mm
}

// Validate rejects rows that must never reach an engine.
func (r InventoryRecord) Validate() error {
	if r.Length <= 0 {
		return fmt.Errorf("record length %.3f: %w", r.Length, ErrInvalidLength)
	}
	if r.Diameter <= 0 {
		return fmt.Errorf("record diameter %.1f: %w", r.Diameter, ErrInvalidDiameter)
	}
	if r.Pieces < 0 {
		return fmt.Errorf("record pieces %d: %w", r.Pieces, ErrInvalidPieces)
	}
	return nil
}

// StockpileRecord is a raw demand row for the stockpile queue.
type StockpileRecord struct {
	Length   float64 `json:"length"`   // m
	Quantity int     `json:"quantity"` // demanded batches
}

// Validate rejects malformed stockpile rows. Zero quantities are legal input
// and simply never enter the queue.
func (r StockpileRecord) Validate() error {
	if r.Length <= 0 {
		return fmt.Errorf("stockpile length %.3f: %w", r.Length, ErrInvalidLength)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("stockpile quantity %d: %w", r.Quantity, ErrInvalidPieces)
	}
	return nil
}

// StockItem is one aggregated stock length owned by an engine. Pieces is
// mutated on every applied combination and never goes negative.
type StockItem struct {
	Length float64 `json:"length"` // m
	Pieces int     `json:"pieces"`
}

// Result records one applied combination: Quantity repetitions of Combination
// cut against Target. Waste is filled in by the waste calculator after a run.
type Result struct {
	ID              string    `json:"id"`
	Quantity        int       `json:"quantity"`
	Combination     []int     `json:"combination"`
	Lengths         []float64 `json:"lengths"`
	CombinedLength  float64   `json:"combined_length"`
	Target          float64   `json:"target"`
	RemainingPieces []int     `json:"remaining_pieces"`
	Waste           float64   `json:"waste"` // kg
}

// NewResultID returns a short unique identifier for a result record.
func NewResultID() string {
	return uuid.New().String()[:8]
}

// FormatCombination renders a combination as "2 x 6.00 + 1 x 3.00",
// skipping unused lengths.
func (r Result) FormatCombination() string {
	var parts []string
	for i, c := range r.Combination {
		if c == 0 || i >= len(r.Lengths) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d x %.2f", c, r.Lengths[i]))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " + ")
}

// UtilizedLength returns the total stock length consumed by this result.
func (r Result) UtilizedLength() float64 {
	return float64(r.Quantity) * r.CombinedLength
}

// TargetLength returns the total commercial length this result stands for.
func (r Result) TargetLength() float64 {
	return float64(r.Quantity) * r.Target
}

// RunStatus describes how a single diameter's run ended.
type RunStatus string

const (
	StatusPending         RunStatus = "pending"
	StatusCompleted       RunStatus = "completed"
	StatusTerminatedEarly RunStatus = "terminated_early"
)

// LeftoverItem is stock that could not be placed against any target within
// the tolerance ceiling.
type LeftoverItem struct {
	Length float64 `json:"length"`
	Pieces int     `json:"pieces"`
}

// CutPlan is the full outcome for one diameter.
type CutPlan struct {
	Diameter       float64        `json:"diameter"`
	Results        []Result       `json:"results"`
	Status         RunStatus      `json:"status"`
	Leftover       []LeftoverItem `json:"leftover,omitempty"`
	FinalTolerance float64        `json:"final_tolerance"`
}

// TotalWeight returns the commercial (target-based) weight of the plan in kg.
func (p CutPlan) TotalWeight() float64 {
	wpm := WeightPerMetre(p.Diameter)
	var total float64
	for _, r := range p.Results {
		total += r.TargetLength() * wpm
	}
	return total
}

// UtilizedWeight returns the weight of stock actually consumed in kg.
func (p CutPlan) UtilizedWeight() float64 {
	wpm := WeightPerMetre(p.Diameter)
	var total float64
	for _, r := range p.Results {
		total += r.UtilizedLength() * wpm
	}
	return total
}

// TotalWaste returns the summed per-result waste in kg.
func (p CutPlan) TotalWaste() float64 {
	var total float64
	for _, r := range p.Results {
		total += r.Waste
	}
	return total
}

// WastePercentage returns waste relative to commercial weight.
func (p CutPlan) WastePercentage() float64 {
	tw := p.TotalWeight()
	if tw == 0 {
		return 0
	}
	return (tw - p.UtilizedWeight()) / tw * 100.0
}

// CommercialPieces returns the number of commercial bars the plan produces.
func (p CutPlan) CommercialPieces() int {
	var total int
	for _, r := range p.Results {
		total += r.Quantity
	}
	return total
}

// LeftoverPieces returns the number of unplaceable pieces.
func (p CutPlan) LeftoverPieces() int {
	var total int
	for _, l := range p.Leftover {
		total += l.Pieces
	}
	return total
}

// Summary condenses the plan into one row for tables and exports.
func (p CutPlan) Summary() DiameterSummary {
	return DiameterSummary{
		Diameter:         p.Diameter,
		TotalWeight:      Round2(p.TotalWeight()),
		Waste:            Round2(p.TotalWeight() - p.UtilizedWeight()),
		WastePercentage:  Round2(p.WastePercentage()),
		CommercialPieces: p.CommercialPieces(),
		LeftoverPieces:   p.LeftoverPieces(),
	}
}

// AggregateStats holds cross-diameter totals. Diameters are independent, so
// the aggregation is a plain commutative sum.
type AggregateStats struct {
	TotalWeight      float64 `json:"total_weight"`     // kg, commercial
	TotalWaste       float64 `json:"total_waste"`      // kg
	WastePercentage  float64 `json:"waste_percentage"` // %
	CommercialPieces int     `json:"commercial_pieces"`
}

// Aggregate sums plan totals across diameters.
func Aggregate(plans []CutPlan) AggregateStats {
	var stats AggregateStats
	var utilized float64
	for _, p := range plans {
		stats.TotalWeight += p.TotalWeight()
		stats.TotalWaste += p.TotalWaste()
		stats.CommercialPieces += p.CommercialPieces()
		utilized += p.UtilizedWeight()
	}
	if stats.TotalWeight > 0 {
		stats.WastePercentage = (stats.TotalWeight - utilized) / stats.TotalWeight * 100.0
	}
	stats.TotalWeight = Round2(stats.TotalWeight)
	stats.TotalWaste = Round2(stats.TotalWaste)
	stats.WastePercentage = Round2(stats.WastePercentage)
	return stats
}

// DiameterSummary is one row of the cross-diameter summary table.
type DiameterSummary struct {
	Diameter         float64 `json:"diameter"`
	TotalWeight      float64 `json:"total_weight"`
	Waste            float64 `json:"waste"`
	WastePercentage  float64 `json:"waste_percentage"`
	CommercialPieces int     `json:"commercial_pieces"`
	LeftoverPieces   int     `json:"leftover_pieces"`
}

// Round2 rounds to two decimal places, the precision used in all reports.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
