// Package commands implements CLI command handlers for barcut.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/barcut/barcut/internal/model"
)

// parseTargets parses a comma-separated list of target lengths in metres.
func parseTargets(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	targets := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid target length %q: %w", p, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("target length must be positive, got %v", v)
		}
		targets = append(targets, v)
	}
	return targets, nil
}

// parseStockpileSpec parses a "diameter=path" stockpile assignment flag.
func parseStockpileSpec(s string) (float64, string, error) {
	idx := strings.Index(s, "=")
	if idx <= 0 || idx == len(s)-1 {
		return 0, "", fmt.Errorf("invalid stockpile spec %q, expected diameter=path", s)
	}
	diameter, err := strconv.ParseFloat(strings.TrimSpace(s[:idx]), 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid stockpile diameter in %q: %w", s, err)
	}
	if diameter <= 0 {
		return 0, "", fmt.Errorf("stockpile diameter must be positive, got %v", diameter)
	}
	return diameter, strings.TrimSpace(s[idx+1:]), nil
}

// settingsFlags holds the tunable optimization parameters shared by run and
// compare. Negative values mean "not set, use config".
type settingsFlags struct {
	Tolerance     float64
	ToleranceStep float64
	MaxTolerance  float64
	MaxIterations int
	Workers       int
	Round         bool
	Decimals      int
}

// apply overlays explicitly set flags onto the base settings.
func (f settingsFlags) apply(base model.Settings, grouping model.GroupingOptions) (model.Settings, model.GroupingOptions) {
	if f.Tolerance >= 0 {
		base.Tolerance = f.Tolerance
	}
	if f.ToleranceStep > 0 {
		base.ToleranceStep = f.ToleranceStep
	}
	if f.MaxTolerance >= 0 {
		base.MaxTolerance = f.MaxTolerance
	}
	if f.MaxIterations > 0 {
		base.MaxIterations = f.MaxIterations
	}
	if f.Workers > 0 {
		base.Workers = f.Workers
	}
	grouping.ApplyRounding = f.Round
	if f.Decimals >= 0 {
		grouping.DecimalPlaces = f.Decimals
	}
	return base, grouping
}
