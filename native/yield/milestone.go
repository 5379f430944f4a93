package yield

import "math"

// MilestoneKind classifies the accrual milestones surfaced to capsule owners.
type MilestoneKind uint8

const (
	MilestoneWeekly MilestoneKind = iota
	MilestoneMonthly
	MilestoneQuarterly
	MilestoneYearly
	MilestoneAnniversary
)

// String returns the canonical lowercase name for the milestone kind.
func (k MilestoneKind) String() string {
	switch k {
	case MilestoneWeekly:
		return "weekly"
	case MilestoneMonthly:
		return "monthly"
	case MilestoneQuarterly:
		return "quarterly"
	case MilestoneYearly:
		return "yearly"
	default:
		return "anniversary"
	}
}

// Milestone reports the next accrual milestone ahead of the supplied age.
type Milestone struct {
	MilestoneDays uint32
	DaysUntil     uint32
	Kind          MilestoneKind
}

var milestoneThresholds = []struct {
	days uint32
	kind MilestoneKind
}{
	{days: 7, kind: MilestoneWeekly},
	{days: 30, kind: MilestoneMonthly},
	{days: 90, kind: MilestoneQuarterly},
	{days: 365, kind: MilestoneYearly},
}

// NextMilestone returns the first milestone strictly ahead of daysActive.
// Beyond the first year every subsequent multiple of 365 days counts as an
// anniversary. The function is total: near the top of the uint32 range both
// fields saturate at the maximum representable value.
func NextMilestone(daysActive uint32) Milestone {
	for _, threshold := range milestoneThresholds {
		if daysActive < threshold.days {
			return Milestone{
				MilestoneDays: threshold.days,
				DaysUntil:     threshold.days - daysActive,
				Kind:          threshold.kind,
			}
		}
	}
	next := (uint64(daysActive)/daysPerYear + 1) * daysPerYear
	if next > math.MaxUint32 {
		next = math.MaxUint32
	}
	until := next - uint64(daysActive)
	return Milestone{
		MilestoneDays: uint32(next),
		DaysUntil:     uint32(until),
		Kind:          MilestoneAnniversary,
	}
}
