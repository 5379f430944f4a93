package yield

import "github.com/holiman/uint256"

const (
	bpsDenominator = 10_000
	daysPerYear    = 365
	secondsPerDay  = 86_400

	// MinorUnitScale fixes the token's decimal convention: one canonical
	// token equals 100 minor units. The staking ladder thresholds below are
	// expressed in whole tokens.
	MinorUnitScale = 100
)

// halfUpDiv divides with round-half-up semantics, the rounding mode mandated
// for the daily rate derivation.
func halfUpDiv(numerator, denominator uint64) uint64 {
	if denominator == 0 {
		return 0
	}
	return (numerator + denominator/2) / denominator
}

type stakingRung struct {
	minTokens uint64
	bonusBps  uint32
}

// Ladder order matters: evaluated top down, first matching rung wins.
var stakingLadder = []stakingRung{
	{minTokens: 100_000, bonusBps: 5_000},
	{minTokens: 50_000, bonusBps: 3_000},
	{minTokens: 10_000, bonusBps: 2_000},
	{minTokens: 1_000, bonusBps: 1_000},
}

// stakingBonusBps maps a staked balance in minor units onto the fixed bonus
// ladder. Balances are converted to whole tokens once before comparison.
func stakingBonusBps(stakedMinor *uint256.Int) uint32 {
	if stakedMinor == nil || stakedMinor.IsZero() {
		return 0
	}
	tokens := new(uint256.Int).Div(stakedMinor, uint256.NewInt(MinorUnitScale))
	for _, rung := range stakingLadder {
		if tokens.Cmp(uint256.NewInt(rung.minTokens)) >= 0 {
			return rung.bonusBps
		}
	}
	return 0
}
