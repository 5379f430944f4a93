package core

import (
	"math/big"

	"github.com/holiman/uint256"

	"gttyield/native/split"
	"gttyield/native/tier"
	"gttyield/native/yield"
)

// Recorder receives engine call outcomes for instrumentation. Implementations
// must be safe for concurrent use; the engine never blocks on them.
type Recorder interface {
	YieldComputed(outcome string)
	SplitComputed(policy string, remainderMinor *big.Int)
	GateChecked(check string, allowed bool)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) YieldComputed(string)           {}
func (NoopRecorder) SplitComputed(string, *big.Int) {}
func (NoopRecorder) GateChecked(string, bool)       {}

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Engine bundles the yield calculator, tier gate, and revenue splitter over
// one pair of immutable catalogs. It is the in-process surface embedding
// services call; every method is a pure computation over caller-supplied
// snapshots, so concurrent use needs no coordination.
type Engine struct {
	tiers    *tier.Catalog
	policies *split.Catalog
	calc     *yield.Calculator
	gate     *tier.Gate
	splitter *split.Splitter
	recorder Recorder
}

// NewEngine wires an engine over validated catalogs.
func NewEngine(tiers *tier.Catalog, policies *split.Catalog) *Engine {
	return &Engine{
		tiers:    tiers,
		policies: policies,
		calc:     yield.NewCalculator(tiers),
		gate:     tier.NewGate(tiers),
		splitter: split.NewSplitter(policies),
		recorder: NoopRecorder{},
	}
}

// SetRecorder configures the instrumentation sink.
func (e *Engine) SetRecorder(recorder Recorder) {
	if recorder == nil {
		e.recorder = NoopRecorder{}
		return
	}
	e.recorder = recorder
}

// SetNowFunc overrides the calculator's time source for deterministic tests.
func (e *Engine) SetNowFunc(now func() int64) { e.calc.SetNowFunc(now) }

// ComputeYield returns the linear accrual for one capsule.
func (e *Engine) ComputeYield(input yield.CapsuleYieldInput) (yield.Result, error) {
	result, err := e.calc.ComputeYield(input)
	e.recordYield(err)
	return result, err
}

// ComputeTierYield returns the capsule accrual with the tier bonus applied to
// the accrued amount.
func (e *Engine) ComputeTierYield(input yield.CapsuleYieldInput, tierID string) (yield.Result, error) {
	result, err := e.calc.ComputeTierYield(input, tierID)
	e.recordYield(err)
	return result, err
}

// ProjectCompound estimates compounded yield for display purposes.
func (e *Engine) ProjectCompound(principalMinor *uint256.Int, annualRateBps, days, periodsPerYear uint32) *big.Int {
	return yield.ProjectCompound(principalMinor, annualRateBps, days, periodsPerYear)
}

// NextMilestone reports the next accrual milestone for a capsule age.
func (e *Engine) NextMilestone(daysActive uint32) yield.Milestone {
	return yield.NextMilestone(daysActive)
}

// Split partitions a gross amount per the named policy.
func (e *Engine) Split(grossMinor *uint256.Int, policyName string, hasReferrer bool) (split.Result, error) {
	result, err := e.splitter.Split(grossMinor, policyName, hasReferrer)
	if err == nil {
		e.recorder.SplitComputed(result.Policy, result.Remainder)
	}
	return result, err
}

// CanMint reports whether the account has mint quota left this period.
func (e *Engine) CanMint(account tier.AccountState) (bool, error) {
	allowed, err := e.gate.CanMint(account)
	e.recordGate("can_mint", allowed, err)
	return allowed, err
}

// CanDonate reports whether the account's tier permits donations.
func (e *Engine) CanDonate(account tier.AccountState) (bool, error) {
	allowed, err := e.gate.CanDonate(account)
	e.recordGate("can_donate", allowed, err)
	return allowed, err
}

// HasCapability reports whether the account's tier grants the capability.
func (e *Engine) HasCapability(account tier.AccountState, tag tier.CapabilityTag) (bool, error) {
	allowed, err := e.gate.HasCapability(account, tag)
	e.recordGate("has_capability", allowed, err)
	return allowed, err
}

// RemainingQuota returns the mints left this period, saturating at zero.
func (e *Engine) RemainingQuota(account tier.AccountState) (uint32, error) {
	return e.gate.RemainingQuota(account)
}

// UpgradeTier returns a copy of the account moved to the new tier.
func (e *Engine) UpgradeTier(account tier.AccountState, newTierID string) (tier.AccountState, error) {
	return e.gate.UpgradeTier(account, newTierID)
}

// SubscriptionCurrent reports whether the subscription entitles the account
// to paid features.
func (e *Engine) SubscriptionCurrent(account tier.AccountState) bool {
	return e.gate.SubscriptionCurrent(account)
}

// Tiers returns the tier definitions in ascending price order.
func (e *Engine) Tiers() []tier.Definition { return e.tiers.Tiers() }

// NextTier returns the next tier up by monthly price.
func (e *Engine) NextTier(id string) (tier.Definition, bool, error) {
	return e.tiers.NextTier(id)
}

// PolicyNames returns the configured split policy names.
func (e *Engine) PolicyNames() []string { return e.policies.Names() }

func (e *Engine) recordYield(err error) {
	if err != nil {
		e.recorder.YieldComputed(outcomeError)
		return
	}
	e.recorder.YieldComputed(outcomeOK)
}

func (e *Engine) recordGate(check string, allowed bool, err error) {
	if err != nil {
		return
	}
	e.recorder.GateChecked(check, allowed)
}
