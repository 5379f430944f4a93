package split

import (
	"math/big"

	"github.com/holiman/uint256"
)

var oneHundred = big.NewInt(100)

// Allocation assigns an amount in minor units to a role.
type Allocation struct {
	Role   Role
	Amount *big.Int
}

// Result is the ordered outcome of partitioning a gross amount. The order
// matches the policy's share declaration order after any referrer fold, and
// the allocation amounts always sum to the gross amount exactly. Remainder
// records the rounding dust the last role absorbed on top of its floor share.
type Result struct {
	Policy      string
	Allocations []Allocation
	Remainder   *big.Int
}

// Amount returns the amount allocated to the role, or zero when the role is
// absent from the result.
func (r Result) Amount(role Role) *big.Int {
	for _, alloc := range r.Allocations {
		if alloc.Role == role {
			return new(big.Int).Set(alloc.Amount)
		}
	}
	return big.NewInt(0)
}

// Sum returns the total of all allocations.
func (r Result) Sum() *big.Int {
	sum := big.NewInt(0)
	for _, alloc := range r.Allocations {
		sum.Add(sum, alloc.Amount)
	}
	return sum
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	clone := Result{Policy: r.Policy}
	if len(r.Allocations) > 0 {
		clone.Allocations = make([]Allocation, len(r.Allocations))
		for i, alloc := range r.Allocations {
			clone.Allocations[i] = Allocation{Role: alloc.Role, Amount: new(big.Int).Set(alloc.Amount)}
		}
	}
	if r.Remainder != nil {
		clone.Remainder = new(big.Int).Set(r.Remainder)
	}
	return clone
}

// Splitter partitions gross amounts according to the policy catalog. It is
// stateless and safe for concurrent use.
type Splitter struct {
	catalog *Catalog
}

// NewSplitter constructs a splitter over the supplied catalog.
func NewSplitter(catalog *Catalog) *Splitter {
	return &Splitter{catalog: catalog}
}

// Split partitions gross minor units across the named policy's roles. When
// hasReferrer is false any referrer share is reassigned to the dao role. Each
// role receives floor(gross * percent / 100) except the last declared role,
// which absorbs the rounding remainder so the allocations reconcile to the
// gross amount exactly.
func (s *Splitter) Split(gross *uint256.Int, policyName string, hasReferrer bool) (Result, error) {
	if s == nil || s.catalog == nil {
		return Result{}, ErrUnknownPolicy
	}
	if gross == nil || gross.IsZero() {
		return Result{}, ErrNegativeAmount
	}
	policy, err := s.catalog.Get(policyName)
	if err != nil {
		return Result{}, err
	}
	shares := effectiveShares(policy, hasReferrer)
	grossInt := gross.ToBig()

	result := Result{Policy: policy.Name, Allocations: make([]Allocation, len(shares))}
	assigned := big.NewInt(0)
	for i, share := range shares {
		var amount *big.Int
		if i == len(shares)-1 {
			amount = new(big.Int).Sub(grossInt, assigned)
			floor := new(big.Int).Mul(grossInt, big.NewInt(int64(share.Percent)))
			floor.Quo(floor, oneHundred)
			result.Remainder = new(big.Int).Sub(amount, floor)
		} else {
			amount = new(big.Int).Mul(grossInt, big.NewInt(int64(share.Percent)))
			amount.Quo(amount, oneHundred)
			assigned.Add(assigned, amount)
		}
		result.Allocations[i] = Allocation{Role: share.Role, Amount: amount}
	}
	return result, nil
}

// effectiveShares folds the referrer share into dao when no referrer exists,
// preserving the original declaration order of the surviving roles.
func effectiveShares(policy Policy, hasReferrer bool) []Share {
	if hasReferrer {
		return policy.Shares
	}
	var referrerPct uint32
	hasReferrerShare := false
	for _, share := range policy.Shares {
		if share.Role == RoleReferrer {
			referrerPct = share.Percent
			hasReferrerShare = true
			break
		}
	}
	if !hasReferrerShare {
		return policy.Shares
	}
	out := make([]Share, 0, len(policy.Shares)-1)
	for _, share := range policy.Shares {
		switch share.Role {
		case RoleReferrer:
			continue
		case RoleDAO:
			out = append(out, Share{Role: RoleDAO, Percent: share.Percent + referrerPct})
		default:
			out = append(out, share)
		}
	}
	return out
}
