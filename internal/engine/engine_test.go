package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barcut/barcut/internal/model"
)

func testSettings() model.Settings {
	s := model.DefaultSettings()
	s.Workers = 1
	return s
}

func newTestEngine(t *testing.T, diameter float64, stock []model.StockItem, targets []float64, settings model.Settings) *Engine {
	t.Helper()
	eng, err := New(diameter, stock, targets, settings)
	require.NoError(t, err)
	return eng
}

func TestNew_RejectsInvalidInput(t *testing.T) {
	stock := []model.StockItem{{Length: 6.0, Pieces: 2}}
	targets := []float64{9.0}

	_, err := New(0, stock, targets, testSettings())
	assert.ErrorIs(t, err, model.ErrInvalidDiameter)

	_, err = New(12, nil, targets, testSettings())
	assert.ErrorIs(t, err, model.ErrNoStock)

	_, err = New(12, stock, nil, testSettings())
	assert.ErrorIs(t, err, model.ErrNoTargets)

	_, err = New(12, []model.StockItem{{Length: -1, Pieces: 2}}, targets, testSettings())
	assert.ErrorIs(t, err, model.ErrInvalidLength)

	_, err = New(12, []model.StockItem{{Length: 6, Pieces: -1}}, targets, testSettings())
	assert.ErrorIs(t, err, model.ErrInvalidPieces)

	_, err = New(12, stock, []float64{-9.0}, testSettings())
	assert.ErrorIs(t, err, model.ErrInvalidLength)
}

func TestRun_ExactCombination(t *testing.T) {
	// 2 pieces each of 6.0 and 3.0 against target 9.0: the best combination
	// is one of each, repeated twice, with zero waste.
	eng := newTestEngine(t, 12,
		[]model.StockItem{{Length: 6.0, Pieces: 2}, {Length: 3.0, Pieces: 2}},
		[]float64{9.0}, testSettings())

	status := eng.Run(context.Background())
	eng.CalculateWaste()

	assert.Equal(t, model.StatusCompleted, status)
	require.Len(t, eng.Results(), 1)

	r := eng.Results()[0]
	assert.Equal(t, []int{1, 1}, r.Combination)
	assert.Equal(t, 2, r.Quantity)
	assert.InDelta(t, 9.0, r.CombinedLength, 1e-9)
	assert.Equal(t, 0.0, r.Waste)
	assert.Equal(t, []int{0, 0}, eng.Pieces(), "stock must be fully consumed")
	assert.Empty(t, eng.Plan().Leftover)
}

func TestRun_ToleranceEscalation(t *testing.T) {
	// 5.0 stock against target 12.0 only becomes feasible at tolerance 2.0:
	// min pieces = ceil((12-2)/5) = 2 = floor(12/5).
	eng := newTestEngine(t, 16,
		[]model.StockItem{{Length: 5.0, Pieces: 3}},
		[]float64{12.0}, testSettings())

	status := eng.Run(context.Background())

	require.NotEmpty(t, eng.Results())
	first := eng.Results()[0]
	assert.Equal(t, []int{2}, first.Combination)
	assert.InDelta(t, 10.0, first.CombinedLength, 1e-9)
	assert.GreaterOrEqual(t, eng.Tolerance(), 2.0-1e-9,
		"no combination exists until tolerance reaches 2.0")
	assert.Equal(t, model.StatusCompleted, status)
	assert.Equal(t, []int{0}, eng.Pieces())
}

func TestFindBestCombination_NoneBelowTolerance(t *testing.T) {
	eng := newTestEngine(t, 16,
		[]model.StockItem{{Length: 5.0, Pieces: 3}},
		[]float64{12.0}, testSettings())

	_, ok := eng.FindBestCombination(12.0)
	assert.False(t, ok, "tolerance 0 admits no combination of 5.0 for 12.0")
}

func TestRun_PiecesNeverNegative(t *testing.T) {
	eng := newTestEngine(t, 12,
		[]model.StockItem{
			{Length: 2.0, Pieces: 7},
			{Length: 3.5, Pieces: 4},
			{Length: 5.0, Pieces: 3},
		},
		[]float64{12.0, 9.0, 7.5}, testSettings())

	eng.Run(context.Background())

	for _, r := range eng.Results() {
		for _, p := range r.RemainingPieces {
			assert.GreaterOrEqual(t, p, 0)
		}
	}
	for _, p := range eng.Pieces() {
		assert.GreaterOrEqual(t, p, 0)
	}
}

func TestRun_UnplaceableLeftoverTerminates(t *testing.T) {
	// A 7.0 bar can never contribute to target 5.0 (floor(5/7) = 0), so the
	// run must stop at the tolerance ceiling and report it as leftover.
	settings := testSettings()
	eng := newTestEngine(t, 20,
		[]model.StockItem{{Length: 7.0, Pieces: 2}},
		[]float64{5.0}, settings)

	done := make(chan model.RunStatus, 1)
	go func() { done <- eng.Run(context.Background()) }()

	select {
	case status := <-done:
		assert.Equal(t, model.StatusTerminatedEarly, status)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not terminate with unplaceable leftover")
	}

	plan := eng.Plan()
	require.Len(t, plan.Leftover, 1)
	assert.Equal(t, 7.0, plan.Leftover[0].Length)
	assert.Equal(t, 2, plan.Leftover[0].Pieces)
	assert.Empty(t, plan.Results)
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng := newTestEngine(t, 12,
		[]model.StockItem{{Length: 6.0, Pieces: 5}},
		[]float64{12.0}, testSettings())

	status := eng.Run(ctx)
	assert.Equal(t, model.StatusTerminatedEarly, status)
}

func TestRun_IterationCap(t *testing.T) {
	settings := testSettings()
	settings.MaxIterations = 1
	eng := newTestEngine(t, 12,
		[]model.StockItem{{Length: 2.0, Pieces: 10}},
		[]float64{12.0, 9.0, 7.5}, settings)

	status := eng.Run(context.Background())
	assert.Equal(t, model.StatusTerminatedEarly, status)
	assert.LessOrEqual(t, len(eng.Results()), 1)
}

func TestReset_RestoresStateAndReproducesResults(t *testing.T) {
	eng := newTestEngine(t, 12,
		[]model.StockItem{
			{Length: 6.0, Pieces: 4},
			{Length: 3.0, Pieces: 6},
		},
		[]float64{12.0, 9.0}, testSettings())

	eng.Run(context.Background())
	eng.CalculateWaste()
	first := eng.Results()
	require.NotEmpty(t, first)

	eng.Reset()
	assert.Equal(t, []int{4, 6}, eng.Pieces())
	assert.Equal(t, 0.0, eng.Tolerance())
	assert.Empty(t, eng.Results())
	assert.Equal(t, model.StatusPending, eng.Status())

	eng.Run(context.Background())
	eng.CalculateWaste()
	second := eng.Results()

	require.Len(t, second, len(first), "re-run after reset must reproduce the run")
	for i := range first {
		assert.Equal(t, first[i].Combination, second[i].Combination)
		assert.Equal(t, first[i].Quantity, second[i].Quantity)
		assert.Equal(t, first[i].Target, second[i].Target)
		assert.InDelta(t, first[i].CombinedLength, second[i].CombinedLength, 1e-9)
		assert.Equal(t, first[i].Waste, second[i].Waste)
	}
}

func TestRun_StockpileOverridesTargetsAndCapsQuantity(t *testing.T) {
	// The stockpile demands 1 batch of 6.0 first (LIFO: added last), then
	// the remaining stock falls back to the cyclic targets.
	eng := newTestEngine(t, 12,
		[]model.StockItem{{Length: 6.0, Pieces: 4}},
		[]float64{12.0}, testSettings())

	eng.Stockpile().Add([]float64{6.0}, []int{1})

	eng.Run(context.Background())

	require.NotEmpty(t, eng.Results())
	first := eng.Results()[0]
	assert.InDelta(t, 6.0, first.Target, 1e-9, "stockpile target overrides the cycle")
	assert.Equal(t, 1, first.Quantity, "stockpile quantity caps the applied multiple")
	assert.False(t, eng.Stockpile().HasItems(), "consumed demand must pop")

	// Remaining 3 pieces of 6.0 go against the regular 12.0 target.
	require.Len(t, eng.Results(), 3)
	assert.InDelta(t, 12.0, eng.Results()[1].Target, 1e-9)
}

func TestCalculateWaste_UsesDiameterWeight(t *testing.T) {
	settings := testSettings()
	eng := newTestEngine(t, 16,
		[]model.StockItem{{Length: 5.0, Pieces: 3}},
		[]float64{12.0}, settings)

	eng.Run(context.Background())
	eng.CalculateWaste()

	wpm := model.WeightPerMetre(16)
	for _, r := range eng.Results() {
		expected := model.Round2((r.TargetLength() - r.UtilizedLength()) * wpm)
		assert.Equal(t, expected, r.Waste)
	}
}

func TestWastePercentage(t *testing.T) {
	eng := newTestEngine(t, 12,
		[]model.StockItem{{Length: 5.0, Pieces: 2}},
		[]float64{10.0}, testSettings())

	eng.Run(context.Background())

	assert.InDelta(t, 0.0, eng.WastePercentage(), 1e-9,
		"2 x 5.0 hits 10.0 exactly")
}
