package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockpile_AddAndCurrent(t *testing.T) {
	sp := NewStockpile()
	assert.False(t, sp.HasItems())

	sp.Add([]float64{4.0}, []int{5})
	require.True(t, sp.HasItems())

	qty, length, ok := sp.Current()
	require.True(t, ok)
	assert.Equal(t, 5, qty)
	assert.Equal(t, 4.0, length)
}

func TestStockpile_DropsNonPositiveQuantities(t *testing.T) {
	sp := NewStockpile()
	sp.Add([]float64{4.0, 3.0, 2.0}, []int{0, 2, -1})

	require.True(t, sp.HasItems())
	assert.Len(t, sp.Items(), 1)

	qty, length, ok := sp.Current()
	require.True(t, ok)
	assert.Equal(t, 2, qty)
	assert.Equal(t, 3.0, length)
}

func TestStockpile_LIFOOrder(t *testing.T) {
	sp := NewStockpile()
	sp.Add([]float64{4.0, 3.0}, []int{1, 2})

	// The last entry added is consumed first.
	_, length, ok := sp.Current()
	require.True(t, ok)
	assert.Equal(t, 3.0, length)

	sp.Consume(2)
	_, length, ok = sp.Current()
	require.True(t, ok)
	assert.Equal(t, 4.0, length)
}

func TestStockpile_ConsumePartialAndExhaust(t *testing.T) {
	sp := NewStockpile()
	sp.Add([]float64{4.0}, []int{5})

	sp.Consume(2)
	qty, _, ok := sp.Current()
	require.True(t, ok)
	assert.Equal(t, 3, qty)

	sp.Consume(5)
	assert.False(t, sp.HasItems(), "over-consuming pops the item")

	_, _, ok = sp.Current()
	assert.False(t, ok)
	sp.Consume(1) // no-op on empty stockpile
}

func TestStockpile_Totals(t *testing.T) {
	sp := NewStockpile()
	sp.Add([]float64{4.0, 2.5}, []int{5, 2})

	assert.Equal(t, 7, sp.TotalQuantity())
	assert.InDelta(t, 25.0, sp.TotalLength(), 1e-9) // 5*4.0 + 2*2.5

	sp.Clear()
	assert.False(t, sp.HasItems())
	assert.Equal(t, 0, sp.TotalQuantity())
}
