package engine

// StockpileItem is one pending demand entry: Quantity batches of Length.
type StockpileItem struct {
	Quantity int     `json:"quantity"`
	Length   float64 `json:"length"`
}

// Stockpile is a LIFO demand queue. While it holds items, its top entry
// overrides the engine's cyclic target selection and caps applied quantities.
type Stockpile struct {
	items []StockpileItem
}

// NewStockpile returns an empty stockpile.
func NewStockpile() *Stockpile {
	return &Stockpile{}
}

// HasItems reports whether any demand remains.
func (s *Stockpile) HasItems() bool {
	return len(s.items) > 0
}

// Add appends demand entries in caller order; the last entry added is
// consumed first. Entries with non-positive quantity are dropped.
func (s *Stockpile) Add(lengths []float64, quantities []int) {
	n := len(lengths)
	if len(quantities) < n {
		n = len(quantities)
	}
	for i := 0; i < n; i++ {
		if quantities[i] > 0 {
			s.items = append(s.items, StockpileItem{Quantity: quantities[i], Length: lengths[i]})
		}
	}
}

// Current returns the quantity and length of the top item. ok is false when
// the stockpile is empty.
func (s *Stockpile) Current() (quantity int, length float64, ok bool) {
	if len(s.items) == 0 {
		return 0, 0, false
	}
	top := s.items[len(s.items)-1]
	return top.Quantity, top.Length, true
}

// Consume decrements the top item by used, popping it when exhausted.
func (s *Stockpile) Consume(used int) {
	if len(s.items) == 0 {
		return
	}
	top := &s.items[len(s.items)-1]
	if used >= top.Quantity {
		s.items = s.items[:len(s.items)-1]
		return
	}
	top.Quantity -= used
}

// Items returns a copy of the pending entries in insertion order.
func (s *Stockpile) Items() []StockpileItem {
	out := make([]StockpileItem, len(s.items))
	copy(out, s.items)
	return out
}

// Clear removes all pending demand.
func (s *Stockpile) Clear() {
	s.items = s.items[:0]
}

// TotalQuantity returns the summed quantity of all pending entries.
func (s *Stockpile) TotalQuantity() int {
	var total int
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalLength returns the summed length demand of all pending entries.
func (s *Stockpile) TotalLength() float64 {
	var total float64
	for _, it := range s.items {
		total += float64(it.Quantity) * it.Length
	}
	return total
}
