package yield

import (
	"math/big"

	"github.com/holiman/uint256"
)

// DefaultPeriodsPerYear is the compounding frequency assumed when callers
// pass zero.
const DefaultPeriodsPerYear = 365

// ProjectCompound estimates the yield a principal would earn if the supplied
// annual rate compounded periodsPerYear times per year over the horizon:
//
//	principal * ((1 + r/n)^(n*t) - 1)
//
// The computation runs entirely in rational arithmetic so projections stay
// exact at horizons spanning decades; the final amount is floored to minor
// units. Projections are display-only estimates; disbursement always follows
// the calculator's linear accrual.
func ProjectCompound(principalMinor *uint256.Int, annualRateBps, days, periodsPerYear uint32) *big.Int {
	if principalMinor == nil || principalMinor.IsZero() || annualRateBps == 0 || days == 0 {
		return big.NewInt(0)
	}
	if periodsPerYear == 0 {
		periodsPerYear = DefaultPeriodsPerYear
	}
	periods := uint64(periodsPerYear) * uint64(days) / daysPerYear
	if periods == 0 {
		return big.NewInt(0)
	}

	perPeriod := big.NewRat(int64(annualRateBps), bpsDenominator*int64(periodsPerYear))
	growth := ratPow(new(big.Rat).Add(big.NewRat(1, 1), perPeriod), periods)
	growth.Sub(growth, big.NewRat(1, 1))
	if growth.Sign() <= 0 {
		return big.NewInt(0)
	}

	projected := new(big.Rat).Mul(growth, new(big.Rat).SetInt(principalMinor.ToBig()))
	return new(big.Int).Quo(projected.Num(), projected.Denom())
}

// ratPow raises base to the given power by repeated squaring.
func ratPow(base *big.Rat, exp uint64) *big.Rat {
	result := big.NewRat(1, 1)
	factor := new(big.Rat).Set(base)
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(result, factor)
		}
		exp >>= 1
		if exp > 0 {
			factor.Mul(factor, factor)
		}
	}
	return result
}
