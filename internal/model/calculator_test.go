package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightPerMetre(t *testing.T) {
	// A 12mm bar weighs about 0.888 kg/m; the d²/162 site rule agrees to ~1%.
	assert.InDelta(t, 0.888, WeightPerMetre(12), 0.001)
	assert.InDelta(t, 12.0*12.0/162.0, WeightPerMetre(12), 0.01)

	assert.Zero(t, WeightPerMetre(0))
	assert.Zero(t, WeightPerMetre(-5))
}

func TestCalculatePurchaseEstimate(t *testing.T) {
	demand := []StockpileRecord{
		{Length: 3.0, Quantity: 10}, // 30m
		{Length: 1.5, Quantity: 4},  // 6m
	}

	est := CalculatePurchaseEstimate(demand, 12, 12.0, 10, 800)

	assert.InDelta(t, 36.0, est.TotalDemandLength, 1e-9)
	assert.InDelta(t, 3.0, est.BarsNeededExact, 1e-9)
	assert.Equal(t, 3, est.BarsNeededMin)
	assert.Equal(t, 4, est.BarsWithWaste, "10% waste factor pushes 3.0 bars to 4")
	assert.InDelta(t, 4*12.0*WeightPerMetre(12), est.TotalWeight, 1e-9)
	assert.InDelta(t, est.TotalWeight/1000*800, est.EstimatedCost, 1e-9)
}

func TestCalculatePurchaseEstimate_WasteNeverBelowMinimum(t *testing.T) {
	demand := []StockpileRecord{{Length: 11.0, Quantity: 1}}

	est := CalculatePurchaseEstimate(demand, 12, 12.0, 0, 0)
	assert.Equal(t, 1, est.BarsNeededMin)
	assert.Equal(t, 1, est.BarsWithWaste)
}

func TestCalculatePurchaseEstimate_ZeroBarLength(t *testing.T) {
	est := CalculatePurchaseEstimate([]StockpileRecord{{Length: 3, Quantity: 2}}, 12, 0, 5, 800)
	assert.InDelta(t, 6.0, est.TotalDemandLength, 1e-9)
	assert.Zero(t, est.BarsNeededMin)
	assert.Zero(t, est.EstimatedCost)
}
