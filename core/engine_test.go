package core

import (
	"errors"
	"math/big"
	"testing"

	"github.com/holiman/uint256"

	"gttyield/config"
	"gttyield/native/split"
	"gttyield/native/tier"
	"gttyield/native/yield"
)

const testNow = int64(1_700_000_000)

type stubRecorder struct {
	yieldOutcomes []string
	splitPolicies []string
	remainders    []*big.Int
	gateChecks    []string
	gateVerdicts  []bool
}

func (r *stubRecorder) YieldComputed(outcome string) {
	r.yieldOutcomes = append(r.yieldOutcomes, outcome)
}

func (r *stubRecorder) SplitComputed(policy string, remainder *big.Int) {
	r.splitPolicies = append(r.splitPolicies, policy)
	r.remainders = append(r.remainders, remainder)
}

func (r *stubRecorder) GateChecked(check string, allowed bool) {
	r.gateChecks = append(r.gateChecks, check)
	r.gateVerdicts = append(r.gateVerdicts, allowed)
}

func testEngine(t *testing.T) (*Engine, *stubRecorder) {
	t.Helper()
	tiers, policies, err := config.Default().Catalogs()
	if err != nil {
		t.Fatalf("default catalogs: %v", err)
	}
	engine := NewEngine(tiers, policies)
	engine.SetNowFunc(func() int64 { return testNow })
	recorder := &stubRecorder{}
	engine.SetRecorder(recorder)
	return engine, recorder
}

func TestEngineComputeYieldRecordsOutcome(t *testing.T) {
	engine, recorder := testEngine(t)
	_, err := engine.ComputeYield(yield.CapsuleYieldInput{
		CreatedAt:      testNow - 30*86_400,
		TruthScore:     100,
		PrincipalMinor: uint256.NewInt(1_000_000),
	})
	if err != nil {
		t.Fatalf("compute yield: %v", err)
	}
	if _, err := engine.ComputeYield(yield.CapsuleYieldInput{CreatedAt: testNow + 1}); !errors.Is(err, yield.ErrInvalidTimestamp) {
		t.Fatalf("expected invalid timestamp, got %v", err)
	}
	want := []string{"ok", "error"}
	if len(recorder.yieldOutcomes) != 2 || recorder.yieldOutcomes[0] != want[0] || recorder.yieldOutcomes[1] != want[1] {
		t.Fatalf("unexpected yield outcomes %v", recorder.yieldOutcomes)
	}
}

func TestEngineComputeTierYield(t *testing.T) {
	engine, _ := testEngine(t)
	input := yield.CapsuleYieldInput{
		CreatedAt:      testNow - 30*86_400,
		TruthScore:     80,
		PrincipalMinor: uint256.NewInt(1_000_000),
	}
	plain, err := engine.ComputeYield(input)
	if err != nil {
		t.Fatalf("compute yield: %v", err)
	}
	boosted, err := engine.ComputeTierYield(input, "SOVEREIGN")
	if err != nil {
		t.Fatalf("compute tier yield: %v", err)
	}
	if boosted.CurrentYieldMinor.Cmp(plain.CurrentYieldMinor) <= 0 {
		t.Fatalf("expected sovereign bonus to raise yield: %s vs %s", boosted.CurrentYieldMinor, plain.CurrentYieldMinor)
	}
}

func TestEngineSplitRecordsRemainder(t *testing.T) {
	engine, recorder := testEngine(t)
	result, err := engine.Split(uint256.NewInt(101), "capsuleMint", false)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if result.Sum().Cmp(big.NewInt(101)) != 0 {
		t.Fatalf("expected conservation, got %s", result.Sum())
	}
	if len(recorder.splitPolicies) != 1 || recorder.splitPolicies[0] != "capsuleMint" {
		t.Fatalf("unexpected split policies %v", recorder.splitPolicies)
	}
	if recorder.remainders[0].Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected remainder 1 recorded, got %s", recorder.remainders[0])
	}
	if _, err := engine.Split(uint256.NewInt(101), "capsuleBurn", false); !errors.Is(err, split.ErrUnknownPolicy) {
		t.Fatalf("expected unknown policy error, got %v", err)
	}
	if len(recorder.splitPolicies) != 1 {
		t.Fatalf("failed split must not be recorded")
	}
}

func TestEngineGateDelegation(t *testing.T) {
	engine, recorder := testEngine(t)
	account := tier.AccountState{
		AccountID:          "acct-1",
		TierID:             "EXPLORER",
		MintsThisPeriod:    5,
		SubscriptionStatus: tier.SubscriptionTrialing,
	}
	canMint, err := engine.CanMint(account)
	if err != nil {
		t.Fatalf("can mint: %v", err)
	}
	if canMint {
		t.Fatalf("expected mint denied at explorer quota")
	}
	remaining, err := engine.RemainingQuota(account)
	if err != nil {
		t.Fatalf("remaining quota: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected zero remaining, got %d", remaining)
	}
	if !engine.SubscriptionCurrent(account) {
		t.Fatalf("expected trialing subscription to count as current")
	}

	upgraded, err := engine.UpgradeTier(account, "CREATOR")
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	canMint, err = engine.CanMint(upgraded)
	if err != nil {
		t.Fatalf("can mint after upgrade: %v", err)
	}
	if !canMint {
		t.Fatalf("expected mint allowed after upgrade to CREATOR")
	}

	if len(recorder.gateChecks) != 2 {
		t.Fatalf("expected 2 recorded gate checks, got %d", len(recorder.gateChecks))
	}
	if recorder.gateVerdicts[0] || !recorder.gateVerdicts[1] {
		t.Fatalf("unexpected gate verdicts %v", recorder.gateVerdicts)
	}
}

func TestEngineCatalogAccessors(t *testing.T) {
	engine, _ := testEngine(t)
	tiers := engine.Tiers()
	if len(tiers) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(tiers))
	}
	next, ok, err := engine.NextTier("CREATOR")
	if err != nil {
		t.Fatalf("next tier: %v", err)
	}
	if !ok || next.ID != "SOVEREIGN" {
		t.Fatalf("expected SOVEREIGN above CREATOR, got %q", next.ID)
	}
	names := engine.PolicyNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 policies, got %v", names)
	}
}

func TestEngineProjectAndMilestone(t *testing.T) {
	engine, _ := testEngine(t)
	projected := engine.ProjectCompound(uint256.NewInt(10_000_000), 1200, 365, 0)
	if projected.Cmp(big.NewInt(1_200_000)) <= 0 {
		t.Fatalf("expected compounding above linear, got %s", projected)
	}
	milestone := engine.NextMilestone(400)
	if milestone.MilestoneDays != 730 || milestone.DaysUntil != 330 || milestone.Kind != yield.MilestoneAnniversary {
		t.Fatalf("unexpected milestone %+v", milestone)
	}
}
