package yield

import (
	"fmt"
	"math/big"
	"time"

	"github.com/holiman/uint256"

	"gttyield/native/tier"
)

const (
	// DefaultBaseAnnualRateBps is the base accrual rate applied when the
	// capsule input leaves the rate unset (12% APY).
	DefaultBaseAnnualRateBps = 1_200

	truthBonusMaxBps = 5_000
	sealBonusBps     = 2_500
	maxScore         = 100
)

// CapsuleYieldInput carries the per-capsule facts needed for one accrual
// computation. Inputs are transient; the calculator never retains them.
type CapsuleYieldInput struct {
	CreatedAt           int64
	TruthScore          uint32
	GriefScore          uint32
	HasVerificationSeal bool
	StakedBalanceMinor  *uint256.Int
	PrincipalMinor      *uint256.Int
	BaseAnnualRateBps   uint32
}

// Result reports the accrued yield and the rates that produced it. The grief
// score is carried through untouched so reporting callers need not re-join the
// input; it never influences the rate.
type Result struct {
	CurrentYieldMinor      *big.Int
	DailyRateBps           uint32
	EffectiveAnnualRateBps uint32
	TierBonusBps           uint32
	DaysActive             uint32
	GriefScore             uint32
}

// Calculator derives linear capsule accrual. It holds no mutable state beyond
// the injected clock and is safe for concurrent use.
type Calculator struct {
	catalog *tier.Catalog
	nowFn   func() int64
}

// NewCalculator constructs a calculator. The catalog may be nil when tier
// bonuses are not needed; ComputeTierYield then fails with the catalog's
// unknown-tier error.
func NewCalculator(catalog *tier.Catalog) *Calculator {
	return &Calculator{
		catalog: catalog,
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetNowFunc overrides the time source for deterministic testing.
func (c *Calculator) SetNowFunc(now func() int64) {
	if now == nil {
		c.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	c.nowFn = now
}

func (c *Calculator) now() int64 {
	if c == nil || c.nowFn == nil {
		return time.Now().Unix()
	}
	return c.nowFn()
}

// ComputeYield returns the accrued yield for one capsule at the current
// moment. Accrual is linear: the effective annual rate is converted to a
// daily rate in basis points (round half up) and applied to the principal for
// each elapsed whole day. All arithmetic is integer; no floats are involved.
func (c *Calculator) ComputeYield(input CapsuleYieldInput) (Result, error) {
	now := c.now()
	if input.CreatedAt < 0 || input.CreatedAt > now {
		return Result{}, fmt.Errorf("%w: createdAt %d", ErrInvalidTimestamp, input.CreatedAt)
	}
	if input.TruthScore > maxScore {
		return Result{}, fmt.Errorf("%w: truth score %d", ErrScoreOutOfRange, input.TruthScore)
	}
	if input.GriefScore > maxScore {
		return Result{}, fmt.Errorf("%w: grief score %d", ErrScoreOutOfRange, input.GriefScore)
	}

	daysActive := uint32((now - input.CreatedAt) / secondsPerDay)

	baseBps := input.BaseAnnualRateBps
	if baseBps == 0 {
		baseBps = DefaultBaseAnnualRateBps
	}
	truthBonus := uint32(halfUpDiv(uint64(input.TruthScore)*truthBonusMaxBps, maxScore))
	var sealBonus uint32
	if input.HasVerificationSeal {
		sealBonus = sealBonusBps
	}
	effectiveBps := baseBps + truthBonus + sealBonus + stakingBonusBps(input.StakedBalanceMinor)
	dailyBps := uint32(halfUpDiv(uint64(effectiveBps), daysPerYear))

	return Result{
		CurrentYieldMinor:      accrue(input.PrincipalMinor, dailyBps, daysActive),
		DailyRateBps:           dailyBps,
		EffectiveAnnualRateBps: effectiveBps,
		DaysActive:             daysActive,
		GriefScore:             input.GriefScore,
	}, nil
}

// ComputeTierYield computes the capsule yield and then applies the account
// tier's yield bonus to the accrued amount. The bonus scales the amount, not
// the rate, so the bounded-rate guarantee on EffectiveAnnualRateBps holds
// regardless of tier.
func (c *Calculator) ComputeTierYield(input CapsuleYieldInput, tierID string) (Result, error) {
	result, err := c.ComputeYield(input)
	if err != nil {
		return Result{}, err
	}
	def, err := c.catalog.Get(tierID)
	if err != nil {
		return Result{}, err
	}
	if def.YieldBonusBps > 0 && result.CurrentYieldMinor.Sign() > 0 {
		bonus := new(big.Int).Mul(result.CurrentYieldMinor, big.NewInt(int64(def.YieldBonusBps)))
		bonus.Quo(bonus, big.NewInt(bpsDenominator))
		result.CurrentYieldMinor = new(big.Int).Add(result.CurrentYieldMinor, bonus)
	}
	result.TierBonusBps = def.YieldBonusBps
	return result, nil
}

// accrue computes principal * dailyBps * days / 10_000 in arbitrary
// precision, flooring the final division.
func accrue(principalMinor *uint256.Int, dailyBps uint32, days uint32) *big.Int {
	if principalMinor == nil || principalMinor.IsZero() || dailyBps == 0 || days == 0 {
		return big.NewInt(0)
	}
	accrued := new(big.Int).Mul(principalMinor.ToBig(), big.NewInt(int64(dailyBps)))
	accrued.Mul(accrued, big.NewInt(int64(days)))
	accrued.Quo(accrued, big.NewInt(bpsDenominator))
	return accrued
}
