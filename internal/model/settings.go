package model

// Settings holds the optimizer configuration for a run.
type Settings struct {
	// Tolerance settings
	Tolerance     float64 `json:"tolerance"`      // initial allowed deviation in m
	ToleranceStep float64 `json:"tolerance_step"` // escalation step in m
	MaxTolerance  float64 `json:"max_tolerance"`  // ceiling; 0 = largest target
	MaxIterations int     `json:"max_iterations"` // outer loop cap per diameter

	// Scoring weights
	PcsWeight    float64 `json:"pcs_weight"`
	WasteWeight  float64 `json:"waste_weight"`
	LengthWeight float64 `json:"length_weight"`

	// Workers is the size of the per-diameter worker pool for RunAll.
	Workers int `json:"workers"`
}

func DefaultSettings() Settings {
	return Settings{
		Tolerance:     0.0,
		ToleranceStep: 0.1,
		MaxTolerance:  0, // derived from the largest target at run time
		MaxIterations: 100000,
		PcsWeight:     2,
		WasteWeight:   2,
		LengthWeight:  2,
		Workers:       4,
	}
}

// DefaultTargets are the commercial bar lengths cut against when the caller
// supplies none.
var DefaultTargets = []float64{12, 10.5, 9, 7.5}

// SpecialLengths are stock lengths that divide the standard targets without
// waste; rounding snaps nearby raw lengths onto them.
var SpecialLengths = []float64{0.75, 1.25, 2.25, 3.75, 5.25}

// GroupingOptions controls inventory grouping and length rounding.
type GroupingOptions struct {
	ApplyRounding  bool      `json:"apply_rounding"`
	DecimalPlaces  int       `json:"decimal_places"`
	Tolerance      float64   `json:"tolerance"` // max deviation to round down or snap
	SpecialLengths []float64 `json:"special_lengths,omitempty"`
}

func DefaultGroupingOptions() GroupingOptions {
	return GroupingOptions{
		ApplyRounding:  false,
		DecimalPlaces:  2,
		Tolerance:      0.02,
		SpecialLengths: SpecialLengths,
	}
}
