package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/barcut/barcut/internal/model"
)

// Manager partitions raw inventory records by diameter and owns one
// independent Engine per group. Diameters have disjoint state, so RunAll may
// execute them concurrently and aggregate results commutatively.
type Manager struct {
	engines   map[float64]*Engine
	diameters []float64
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{engines: make(map[float64]*Engine)}
}

// Load validates and groups inventory records, aggregates duplicate lengths
// within each diameter and builds one engine per diameter. Any invalid
// record fails the whole load before any engine is created.
func (m *Manager) Load(records []model.InventoryRecord, targets []float64, settings model.Settings, opts model.GroupingOptions) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return model.ErrNoTargets
	}
	if len(records) == 0 {
		return model.ErrNoStock
	}

	m.engines = make(map[float64]*Engine)
	m.diameters = nil

	for diameter, group := range groupByDiameter(records) {
		stock := aggregateLengths(group, opts)
		eng, err := New(diameter, stock, targets, settings)
		if err != nil {
			return fmt.Errorf("diameter %.1f: %w", diameter, err)
		}
		m.engines[diameter] = eng
		m.diameters = append(m.diameters, diameter)
	}
	sort.Float64s(m.diameters)
	return nil
}

// groupByDiameter splits records into per-diameter groups.
func groupByDiameter(records []model.InventoryRecord) map[float64][]model.InventoryRecord {
	groups := make(map[float64][]model.InventoryRecord)
	for _, r := range records {
		groups[r.Diameter] = append(groups[r.Diameter], r)
	}
	return groups
}

// aggregateLengths merges rows of identical (optionally rounded) length by
// summing piece counts, so duplicate lengths never reach an engine
// ungrouped. With rounding enabled the bucket is keyed by the rounded value
// but the engine is configured with the largest original length that mapped
// to it, biasing toward never under-supplying stock. Buckets are returned in
// ascending length order for deterministic engine input.
func aggregateLengths(records []model.InventoryRecord, opts model.GroupingOptions) []model.StockItem {
	type bucket struct {
		maxOriginal float64
		pieces      int
	}
	buckets := make(map[float64]*bucket)

	for _, r := range records {
		key := r.Length
		if opts.ApplyRounding {
			key = SmartRound(r.Length, opts)
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.pieces += r.Pieces
		if r.Length > b.maxOriginal {
			b.maxOriginal = r.Length
		}
	}

	keys := make([]float64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	stock := make([]model.StockItem, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		length := k
		if opts.ApplyRounding {
			length = b.maxOriginal
		}
		stock = append(stock, model.StockItem{Length: length, Pieces: b.pieces})
	}
	return stock
}

// SmartRound snaps a raw length onto a no-waste special length when within
// the rounding tolerance of one. Otherwise it rounds up at the configured
// precision, rounding down only when the upward distance is within
// tolerance, so stock is never under-supplied.
func SmartRound(length float64, opts model.GroupingOptions) float64 {
	for _, special := range opts.SpecialLengths {
		if math.Abs(length-special) <= opts.Tolerance+epsilon {
			return special
		}
	}

	scale := math.Pow(10, float64(opts.DecimalPlaces))
	down := math.Floor(length*scale+epsilon) / scale
	up := math.Ceil(length*scale-epsilon) / scale
	if up-length <= opts.Tolerance+epsilon {
		return down
	}
	return up
}

// Diameters returns the available diameters in ascending order.
func (m *Manager) Diameters() []float64 {
	out := make([]float64, len(m.diameters))
	copy(out, m.diameters)
	return out
}

// Engine returns the engine for a diameter, or nil when none exists. The
// caller holds the diameter key; the manager keeps no "current" selection.
func (m *Manager) Engine(diameter float64) *Engine {
	return m.engines[diameter]
}

// AddStockpile pushes demand records onto one diameter's stockpile queue.
func (m *Manager) AddStockpile(diameter float64, records []model.StockpileRecord) error {
	eng := m.engines[diameter]
	if eng == nil {
		return fmt.Errorf("no engine for diameter %.1f", diameter)
	}
	lengths := make([]float64, 0, len(records))
	quantities := make([]int, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		lengths = append(lengths, r.Length)
		quantities = append(quantities, r.Quantity)
	}
	eng.Stockpile().Add(lengths, quantities)
	return nil
}

// RunAll optimizes every diameter through a bounded worker pool and computes
// per-result waste. Workers below one are clamped to one; ordering between
// diameters is irrelevant because their state is disjoint.
func (m *Manager) RunAll(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(m.diameters) {
		workers = len(m.diameters)
	}

	jobs := make(chan float64)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for d := range jobs {
				eng := m.engines[d]
				eng.Run(ctx)
				eng.CalculateWaste()
			}
		}()
	}

	for _, d := range m.diameters {
		jobs <- d
	}
	close(jobs)
	wg.Wait()
}

// Plans returns the per-diameter outcomes in ascending diameter order.
func (m *Manager) Plans() []model.CutPlan {
	plans := make([]model.CutPlan, 0, len(m.diameters))
	for _, d := range m.diameters {
		plans = append(plans, m.engines[d].Plan())
	}
	return plans
}

// TotalStats sums weight, waste and piece counts across all diameters.
func (m *Manager) TotalStats() model.AggregateStats {
	return model.Aggregate(m.Plans())
}

// Summary returns one totals row per diameter in ascending order.
func (m *Manager) Summary() []model.DiameterSummary {
	rows := make([]model.DiameterSummary, 0, len(m.diameters))
	for _, d := range m.diameters {
		rows = append(rows, m.engines[d].Plan().Summary())
	}
	return rows
}

// ResetAll restores every engine to its construction-time state.
func (m *Manager) ResetAll() {
	for _, eng := range m.engines {
		eng.Reset()
	}
}
