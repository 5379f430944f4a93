package tier

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog holds the immutable set of tier definitions for the process. It is
// built once at startup and safe for concurrent readers; lookups never mutate
// internal state.
type Catalog struct {
	ordered []Definition
	byID    map[string]int
}

// NewCatalog validates the supplied definitions and returns a catalog ordered
// by ascending monthly price. Validation failures wrap ErrMalformedCatalog and
// are intended to abort process startup.
func NewCatalog(defs []Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no tiers defined", ErrMalformedCatalog)
	}
	ordered := make([]Definition, 0, len(defs))
	for _, def := range defs {
		id := strings.TrimSpace(def.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: tier id required", ErrMalformedCatalog)
		}
		def.ID = id
		ordered = append(ordered, def.Clone())
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PriceMonthlyMinor < ordered[j].PriceMonthlyMinor
	})
	byID := make(map[string]int, len(ordered))
	for i, def := range ordered {
		if _, exists := byID[def.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate tier id %q", ErrMalformedCatalog, def.ID)
		}
		byID[def.ID] = i
	}
	return &Catalog{ordered: ordered, byID: byID}, nil
}

// Get resolves a tier definition by id.
func (c *Catalog) Get(id string) (Definition, error) {
	if c == nil {
		return Definition{}, ErrUnknownTier
	}
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownTier, id)
	}
	return c.ordered[idx].Clone(), nil
}

// NextTier returns the next tier by ascending monthly price, used by upgrade
// flows to surface the cheapest step up. The boolean is false when the
// supplied tier is already the most expensive.
func (c *Catalog) NextTier(id string) (Definition, bool, error) {
	if c == nil {
		return Definition{}, false, ErrUnknownTier
	}
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Definition{}, false, fmt.Errorf("%w: %q", ErrUnknownTier, id)
	}
	if idx+1 >= len(c.ordered) {
		return Definition{}, false, nil
	}
	return c.ordered[idx+1].Clone(), true, nil
}

// Tiers returns the definitions in ascending price order.
func (c *Catalog) Tiers() []Definition {
	if c == nil {
		return nil
	}
	out := make([]Definition, len(c.ordered))
	for i, def := range c.ordered {
		out[i] = def.Clone()
	}
	return out
}

// Len reports the number of tiers in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ordered)
}
