package split

import "math/big"

// Totals accumulates per-role amounts across many split results, mirroring
// what a disbursement batcher needs before settling a period.
type Totals struct {
	Gross   *big.Int
	ByRole  map[Role]*big.Int
	Results uint64
}

// NewTotals returns an empty accumulator.
func NewTotals() *Totals {
	return &Totals{Gross: big.NewInt(0), ByRole: make(map[Role]*big.Int)}
}

// Add folds a split result into the running totals.
func (t *Totals) Add(result Result) {
	if t == nil {
		return
	}
	if t.Gross == nil {
		t.Gross = big.NewInt(0)
	}
	if t.ByRole == nil {
		t.ByRole = make(map[Role]*big.Int)
	}
	for _, alloc := range result.Allocations {
		if alloc.Amount == nil {
			continue
		}
		t.Gross.Add(t.Gross, alloc.Amount)
		current, ok := t.ByRole[alloc.Role]
		if !ok {
			current = big.NewInt(0)
			t.ByRole[alloc.Role] = current
		}
		current.Add(current, alloc.Amount)
	}
	t.Results++
}

// Amount returns the accumulated amount for a role.
func (t *Totals) Amount(role Role) *big.Int {
	if t == nil || t.ByRole == nil {
		return big.NewInt(0)
	}
	current, ok := t.ByRole[role]
	if !ok {
		return big.NewInt(0)
	}
	return new(big.Int).Set(current)
}

// Clone returns a deep copy of the totals.
func (t *Totals) Clone() *Totals {
	if t == nil {
		return nil
	}
	clone := NewTotals()
	if t.Gross != nil {
		clone.Gross.Set(t.Gross)
	}
	for role, amount := range t.ByRole {
		clone.ByRole[role] = new(big.Int).Set(amount)
	}
	clone.Results = t.Results
	return clone
}
