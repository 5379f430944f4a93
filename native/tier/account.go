package tier

import "github.com/holiman/uint256"

// SubscriptionStatus mirrors the billing state supplied by the external
// persistence layer.
type SubscriptionStatus uint8

const (
	SubscriptionInactive SubscriptionStatus = iota
	SubscriptionActive
	SubscriptionTrialing
)

// String returns the canonical lowercase name for the status.
func (s SubscriptionStatus) String() string {
	switch s {
	case SubscriptionActive:
		return "active"
	case SubscriptionTrialing:
		return "trialing"
	default:
		return "inactive"
	}
}

// AccountState is a snapshot of the per-account facts the engine consumes.
// The engine never mutates a snapshot in place; transitions such as
// UpgradeTier return a fresh value and persistence remains the caller's
// responsibility.
type AccountState struct {
	AccountID          string
	TierID             string
	MintsThisPeriod    uint32
	PeriodStart        int64
	StakedBalanceMinor *uint256.Int
	SubscriptionStatus SubscriptionStatus
}

// Clone returns a copy of the snapshot with a duplicated staked balance.
func (a AccountState) Clone() AccountState {
	clone := a
	if a.StakedBalanceMinor != nil {
		clone.StakedBalanceMinor = new(uint256.Int).Set(a.StakedBalanceMinor)
	}
	return clone
}
