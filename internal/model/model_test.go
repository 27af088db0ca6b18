package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRecordValidate(t *testing.T) {
	assert.NoError(t, InventoryRecord{Length: 6, Pieces: 2, Diameter: 12}.Validate())
	assert.NoError(t, InventoryRecord{Length: 6, Pieces: 0, Diameter: 12}.Validate(),
		"zero pieces is legal input")

	assert.ErrorIs(t, InventoryRecord{Length: 0, Pieces: 2, Diameter: 12}.Validate(), ErrInvalidLength)
	assert.ErrorIs(t, InventoryRecord{Length: 6, Pieces: 2, Diameter: -1}.Validate(), ErrInvalidDiameter)
	assert.ErrorIs(t, InventoryRecord{Length: 6, Pieces: -2, Diameter: 12}.Validate(), ErrInvalidPieces)
}

func TestStockpileRecordValidate(t *testing.T) {
	assert.NoError(t, StockpileRecord{Length: 4, Quantity: 5}.Validate())
	assert.NoError(t, StockpileRecord{Length: 4, Quantity: 0}.Validate())
	assert.ErrorIs(t, StockpileRecord{Length: 0, Quantity: 5}.Validate(), ErrInvalidLength)
	assert.ErrorIs(t, StockpileRecord{Length: 4, Quantity: -1}.Validate(), ErrInvalidPieces)
}

func TestResultFormatCombination(t *testing.T) {
	r := Result{
		Combination: []int{2, 0, 1},
		Lengths:     []float64{6.0, 3.0, 1.25},
	}
	assert.Equal(t, "2 x 6.00 + 1 x 1.25", r.FormatCombination())

	empty := Result{Combination: []int{0, 0}, Lengths: []float64{6.0, 3.0}}
	assert.Equal(t, "-", empty.FormatCombination())
}

func TestCutPlanTotals(t *testing.T) {
	plan := CutPlan{
		Diameter: 12,
		Results: []Result{
			{Quantity: 2, CombinedLength: 9.0, Target: 9.0, Waste: 0},
			{Quantity: 1, CombinedLength: 10.0, Target: 12.0, Waste: 1.78},
		},
		Leftover: []LeftoverItem{{Length: 7.0, Pieces: 3}},
	}

	wpm := WeightPerMetre(12)
	assert.InDelta(t, (2*9.0+1*12.0)*wpm, plan.TotalWeight(), 1e-9)
	assert.InDelta(t, (2*9.0+1*10.0)*wpm, plan.UtilizedWeight(), 1e-9)
	assert.InDelta(t, 1.78, plan.TotalWaste(), 1e-9)
	assert.Equal(t, 3, plan.CommercialPieces())
	assert.Equal(t, 3, plan.LeftoverPieces())

	// 2m of 30m commercial length wasted.
	assert.InDelta(t, 2.0/30.0*100, plan.WastePercentage(), 1e-9)
}

func TestAggregateIsCommutative(t *testing.T) {
	p1 := CutPlan{Diameter: 12, Results: []Result{{Quantity: 2, CombinedLength: 9, Target: 9, Waste: 0.5}}}
	p2 := CutPlan{Diameter: 16, Results: []Result{{Quantity: 1, CombinedLength: 10, Target: 12, Waste: 3.16}}}

	a := Aggregate([]CutPlan{p1, p2})
	b := Aggregate([]CutPlan{p2, p1})
	assert.Equal(t, a, b)
	assert.Equal(t, 3, a.CommercialPieces)
	assert.Greater(t, a.WastePercentage, 0.0)
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Zero(t, stats.TotalWeight)
	assert.Zero(t, stats.WastePercentage)
}

func TestNewResultID(t *testing.T) {
	id := NewResultID()
	require.Len(t, id, 8)
	assert.NotEqual(t, id, NewResultID())
}
