// Package engine implements the combination optimization core: recursive
// enumeration of stock-length combinations against target lengths, heuristic
// scoring, stateful inventory consumption and the tolerance-escalation loop.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/barcut/barcut/internal/model"
)

// Engine optimizes the stock of a single bar diameter. It owns its length
// and piece vectors and mutates them as combinations are applied. An Engine
// is not safe for concurrent use; distinct engines are fully independent.
type Engine struct {
	diameter       float64
	lengths        []float64
	pieces         []int
	targets        []float64
	settings       model.Settings
	tolerance      float64
	weightPerMetre float64

	scorer    *Scorer
	stockpile *Stockpile

	results []model.Result
	status  model.RunStatus

	origPieces []int
	logger     *slog.Logger
}

// New builds an engine for one diameter from aggregated stock items.
// Input is validated up front: no engine state is created from bad rows.
func New(diameter float64, stock []model.StockItem, targets []float64, settings model.Settings) (*Engine, error) {
	if diameter <= 0 {
		return nil, fmt.Errorf("diameter %.1f: %w", diameter, model.ErrInvalidDiameter)
	}
	if len(stock) == 0 {
		return nil, model.ErrNoStock
	}
	if len(targets) == 0 {
		return nil, model.ErrNoTargets
	}
	for _, t := range targets {
		if t <= 0 {
			return nil, fmt.Errorf("target %.3f: %w", t, model.ErrInvalidLength)
		}
	}

	lengths := make([]float64, len(stock))
	pieces := make([]int, len(stock))
	for i, s := range stock {
		if s.Length <= 0 {
			return nil, fmt.Errorf("stock length %.3f: %w", s.Length, model.ErrInvalidLength)
		}
		if s.Pieces < 0 {
			return nil, fmt.Errorf("stock pieces %d: %w", s.Pieces, model.ErrInvalidPieces)
		}
		lengths[i] = s.Length
		pieces[i] = s.Pieces
	}

	if settings.ToleranceStep <= 0 {
		settings.ToleranceStep = model.DefaultSettings().ToleranceStep
	}
	if settings.MaxIterations <= 0 {
		settings.MaxIterations = model.DefaultSettings().MaxIterations
	}

	return &Engine{
		diameter:       diameter,
		lengths:        lengths,
		pieces:         pieces,
		targets:        slices.Clone(targets),
		settings:       settings,
		tolerance:      settings.Tolerance,
		weightPerMetre: model.WeightPerMetre(diameter),
		scorer:         NewScorer(settings.PcsWeight, settings.WasteWeight, settings.LengthWeight),
		stockpile:      NewStockpile(),
		status:         model.StatusPending,
		origPieces:     slices.Clone(pieces),
		logger:         slog.Default(),
	}, nil
}

// SetLogger replaces the logger used for internal-invariant warnings.
func (e *Engine) SetLogger(logger *slog.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

func (e *Engine) Diameter() float64  { return e.diameter }
func (e *Engine) Tolerance() float64 { return e.tolerance }

// Lengths returns a copy of the active length vector.
func (e *Engine) Lengths() []float64 { return slices.Clone(e.lengths) }

// Pieces returns a copy of the remaining piece counts.
func (e *Engine) Pieces() []int { return slices.Clone(e.pieces) }

// Targets returns a copy of the target list.
func (e *Engine) Targets() []float64 { return slices.Clone(e.targets) }

// Results returns the accumulated results of the current run.
func (e *Engine) Results() []model.Result { return e.results }

// Stockpile exposes the engine's demand queue for external prioritization.
func (e *Engine) Stockpile() *Stockpile { return e.stockpile }

// Status reports how the last run ended.
func (e *Engine) Status() model.RunStatus { return e.status }

// FindBestCombination enumerates all combinations within the current
// tolerance of target and returns the highest scoring one. Ties are broken
// by enumeration order: the first maximum wins. The all-zero combination is
// never returned. ok is false when nothing feasible exists.
func (e *Engine) FindBestCombination(target float64) (combination []int, ok bool) {
	combos := generateCombinations(target, e.tolerance, e.lengths, e.pieces)

	var best []int
	bestScore := 0.0
	for _, c := range combos {
		if isZeroCombination(c) {
			continue
		}
		score := e.scorer.ScoreCombination(c, e.pieces)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, best != nil
}

// largestMultiple returns the largest m such that m repetitions of the
// combination fit in the remaining pieces, capped by the active stockpile
// demand when present.
func (e *Engine) largestMultiple(combination []int) int {
	multiple := -1
	for i, c := range combination {
		if c == 0 {
			continue
		}
		m := e.pieces[i] / c
		if multiple < 0 || m < multiple {
			multiple = m
		}
	}
	if multiple < 0 {
		return 0
	}
	if qty, _, ok := e.stockpile.Current(); ok && qty < multiple {
		multiple = qty
	}
	return multiple
}

// apply consumes the largest repeatable multiple of combination and records
// a result. A zero multiple violates an internal invariant (the combination
// was derived from the current pieces); it is logged and skipped rather than
// propagated.
func (e *Engine) apply(combination []int, target float64) bool {
	quantity := e.largestMultiple(combination)
	if quantity <= 0 {
		e.logger.Warn("skipping combination with zero multiple",
			"diameter", e.diameter,
			"target", target,
			"combination", combination)
		return false
	}

	for i, c := range combination {
		e.pieces[i] -= quantity * c
	}

	e.results = append(e.results, model.Result{
		ID:              model.NewResultID(),
		Quantity:        quantity,
		Combination:     slices.Clone(combination),
		Lengths:         slices.Clone(e.lengths),
		CombinedLength:  combinedLength(combination, e.lengths),
		Target:          target,
		RemainingPieces: slices.Clone(e.pieces),
	})

	if e.stockpile.HasItems() {
		e.stockpile.Consume(quantity)
	}
	return true
}

// Run executes the outer optimization loop until the stock is exhausted or a
// ceiling is hit. Targets are scanned cyclically starting from the primary
// one; a non-empty stockpile overrides the cycle. A full pass over all
// targets without success escalates the tolerance by the configured step.
//
// Termination is always bounded: the tolerance ceiling (MaxTolerance, or the
// largest target when unset), the iteration cap and the context each end the
// run early with partial results; the untouched pieces are then reported as
// leftover by Plan.
func (e *Engine) Run(ctx context.Context) model.RunStatus {
	e.results = nil
	e.status = model.StatusCompleted
	e.scorer.CalculateLengthScores(e.lengths)

	ceiling := e.settings.MaxTolerance
	if ceiling <= 0 {
		ceiling = maxOf(e.targets)
	}

	targetIdx := 0
	iterations := 0
	for e.hasPieces() {
		if ctx.Err() != nil {
			e.status = model.StatusTerminatedEarly
			return e.status
		}
		iterations++
		if iterations > e.settings.MaxIterations {
			e.logger.Warn("iteration cap reached",
				"diameter", e.diameter, "iterations", iterations-1)
			e.status = model.StatusTerminatedEarly
			return e.status
		}

		target := e.targets[targetIdx]
		if _, length, ok := e.stockpile.Current(); ok {
			target = length
		}

		e.scorer.CalculateWasteScores(e.lengths, e.targets)

		applied := false
		if combination, ok := e.FindBestCombination(target); ok {
			applied = e.apply(combination, target)
		}
		if !applied {
			targetIdx = (targetIdx + 1) % len(e.targets)
			if targetIdx == 0 {
				e.tolerance += e.settings.ToleranceStep
				if e.tolerance > ceiling+epsilon {
					e.status = model.StatusTerminatedEarly
					return e.status
				}
			}
			continue
		}

		// Success: prefer the primary target again.
		targetIdx = 0
	}

	return e.status
}

// CalculateWaste fills the waste field of every result: the weight of the
// commercial length minus the weight of the stock actually consumed.
func (e *Engine) CalculateWaste() {
	for i := range e.results {
		r := &e.results[i]
		utilized := r.UtilizedLength() * e.weightPerMetre
		commercial := r.TargetLength() * e.weightPerMetre
		r.Waste = model.Round2(commercial - utilized)
	}
}

// WastePercentage returns length-based waste over all results so far.
func (e *Engine) WastePercentage() float64 {
	var utilized, commercial float64
	for _, r := range e.results {
		utilized += r.UtilizedLength()
		commercial += r.TargetLength()
	}
	if commercial == 0 {
		return 0
	}
	return (commercial - utilized) / commercial * 100.0
}

// Plan snapshots the run outcome, including any unplaceable leftover stock.
func (e *Engine) Plan() model.CutPlan {
	plan := model.CutPlan{
		Diameter:       e.diameter,
		Results:        slices.Clone(e.results),
		Status:         e.status,
		FinalTolerance: e.tolerance,
	}
	for i, p := range e.pieces {
		if p > 0 {
			plan.Leftover = append(plan.Leftover, model.LeftoverItem{
				Length: e.lengths[i],
				Pieces: p,
			})
		}
	}
	return plan
}

// Reset restores pieces and tolerance to construction-time values, clears
// accumulated results and pending stockpile demand. Re-running after a reset
// reproduces identical results.
func (e *Engine) Reset() {
	copy(e.pieces, e.origPieces)
	e.tolerance = e.settings.Tolerance
	e.results = nil
	e.status = model.StatusPending
	e.stockpile.Clear()
}

func (e *Engine) hasPieces() bool {
	for _, p := range e.pieces {
		if p > 0 {
			return true
		}
	}
	return false
}
