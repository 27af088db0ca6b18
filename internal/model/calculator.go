package model

import "math"

// steelDensity is the density of reinforcement steel in kg/m³.
const steelDensity = 7850.0

// WeightPerMetre returns the mass of one metre of bar in kg for a diameter
// given in mm. The familiar d²/162 site rule is the same quantity rounded.
func WeightPerMetre(diameter float64) float64 {
	if diameter <= 0 {
		return 0
	}
	return (math.Pi / 4) * steelDensity * math.Pow(diameter/1000, 2)
}

// PurchaseEstimate holds the results of a bar purchasing calculation.
type PurchaseEstimate struct {
	TotalDemandLength float64 `json:"total_demand_length"` // m of finished cuts required
	TotalWeight       float64 `json:"total_weight"`        // kg including waste factor
	BarLength         float64 `json:"bar_length"`          // commercial bar length used (m)
	BarsNeededExact   float64 `json:"bars_needed_exact"`   // exact fractional bar count
	BarsNeededMin     int     `json:"bars_needed_min"`     // ceiling of exact
	BarsWithWaste     int     `json:"bars_with_waste"`     // recommended including waste factor
	WastePercent      float64 `json:"waste_percent"`       // waste factor applied (e.g. 5 for 5%)
	EstimatedCost     float64 `json:"estimated_cost"`      // total cost if pricing available
	PricePerTonne     float64 `json:"price_per_tonne"`     // price used for estimation
}

// CalculatePurchaseEstimate computes how many commercial bars to buy to cover
// a demand list of (length, pieces) pairs for one diameter. It applies an
// additional waste percentage on top of the exact requirement.
func CalculatePurchaseEstimate(demand []StockpileRecord, diameter, barLength, wastePercent, pricePerTonne float64) PurchaseEstimate {
	var totalDemand float64
	for _, d := range demand {
		totalDemand += d.Length * float64(d.Quantity)
	}

	if barLength <= 0 {
		return PurchaseEstimate{
			TotalDemandLength: totalDemand,
			WastePercent:      wastePercent,
			PricePerTonne:     pricePerTonne,
		}
	}

	exactBars := totalDemand / barLength
	minBars := int(math.Ceil(exactBars))

	wasteFactor := 1.0 + wastePercent/100.0
	barsWithWaste := int(math.Ceil(exactBars * wasteFactor))
	if barsWithWaste < minBars {
		barsWithWaste = minBars
	}

	totalWeight := float64(barsWithWaste) * barLength * WeightPerMetre(diameter)
	estimatedCost := totalWeight / 1000.0 * pricePerTonne

	return PurchaseEstimate{
		TotalDemandLength: totalDemand,
		TotalWeight:       totalWeight,
		BarLength:         barLength,
		BarsNeededExact:   exactBars,
		BarsNeededMin:     minBars,
		BarsWithWaste:     barsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     estimatedCost,
		PricePerTonne:     pricePerTonne,
	}
}
