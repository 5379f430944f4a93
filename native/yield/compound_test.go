package yield

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestProjectCompoundZeroInputs(t *testing.T) {
	if got := ProjectCompound(nil, 1200, 365, 0); got.Sign() != 0 {
		t.Fatalf("expected zero projection for nil principal, got %s", got)
	}
	if got := ProjectCompound(uint256.NewInt(1_000_000), 0, 365, 0); got.Sign() != 0 {
		t.Fatalf("expected zero projection for zero rate, got %s", got)
	}
	if got := ProjectCompound(uint256.NewInt(1_000_000), 1200, 0, 0); got.Sign() != 0 {
		t.Fatalf("expected zero projection for zero horizon, got %s", got)
	}
}

func TestProjectCompoundOneYearDaily(t *testing.T) {
	principal := uint256.NewInt(10_000_000)
	projected := ProjectCompound(principal, 1200, 365, 0)

	// Daily compounding at 12% APY lands between simple interest (12%) and
	// the continuous-compounding limit (e^0.12 - 1 ≈ 12.75%).
	linear := big.NewInt(1_200_000)
	ceiling := big.NewInt(1_280_000)
	if projected.Cmp(linear) <= 0 {
		t.Fatalf("expected projection above linear accrual %s, got %s", linear, projected)
	}
	if projected.Cmp(ceiling) >= 0 {
		t.Fatalf("expected projection below %s, got %s", ceiling, projected)
	}
}

func TestProjectCompoundGrowsWithHorizon(t *testing.T) {
	principal := uint256.NewInt(10_000_000)
	oneYear := ProjectCompound(principal, 1200, 365, 0)
	tenYears := ProjectCompound(principal, 1200, 3650, 0)
	if tenYears.Cmp(oneYear) <= 0 {
		t.Fatalf("expected longer horizon to project more: %s vs %s", tenYears, oneYear)
	}
	// (1.12...)^10 - 1 exceeds 2x the principal at 12% compounded daily.
	double := big.NewInt(20_000_000)
	if tenYears.Cmp(double) <= 0 {
		t.Fatalf("expected decade projection above %s, got %s", double, tenYears)
	}
}

func TestProjectCompoundCoarsePeriods(t *testing.T) {
	principal := uint256.NewInt(10_000_000)
	monthly := ProjectCompound(principal, 1200, 365, 12)
	daily := ProjectCompound(principal, 1200, 365, 365)
	if daily.Cmp(monthly) <= 0 {
		t.Fatalf("expected daily compounding to beat monthly: %s vs %s", daily, monthly)
	}
}
