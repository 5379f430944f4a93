package yield

import (
	"math"
	"testing"
)

func TestNextMilestone(t *testing.T) {
	cases := []struct {
		name       string
		daysActive uint32
		wantDays   uint32
		wantUntil  uint32
		wantKind   MilestoneKind
	}{
		{"fresh capsule", 0, 7, 7, MilestoneWeekly},
		{"mid first week", 3, 7, 4, MilestoneWeekly},
		{"at weekly mark", 7, 30, 23, MilestoneMonthly},
		{"approaching quarter", 45, 90, 45, MilestoneQuarterly},
		{"approaching year", 364, 365, 1, MilestoneYearly},
		{"at year mark", 365, 730, 365, MilestoneAnniversary},
		{"second year", 400, 730, 330, MilestoneAnniversary},
		{"many years in", 3650, 4015, 365, MilestoneAnniversary},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextMilestone(tc.daysActive)
			if got.MilestoneDays != tc.wantDays {
				t.Fatalf("milestone days: expected %d, got %d", tc.wantDays, got.MilestoneDays)
			}
			if got.DaysUntil != tc.wantUntil {
				t.Fatalf("days until: expected %d, got %d", tc.wantUntil, got.DaysUntil)
			}
			if got.Kind != tc.wantKind {
				t.Fatalf("kind: expected %s, got %s", tc.wantKind, got.Kind)
			}
		})
	}
}

func TestNextMilestoneTotalAtBounds(t *testing.T) {
	got := NextMilestone(math.MaxUint32)
	if got.Kind != MilestoneAnniversary {
		t.Fatalf("expected anniversary at upper bound, got %s", got.Kind)
	}
	if got.MilestoneDays != math.MaxUint32 {
		t.Fatalf("expected saturated milestone days, got %d", got.MilestoneDays)
	}
	if got.DaysUntil != 0 {
		t.Fatalf("expected zero days until at saturation, got %d", got.DaysUntil)
	}
}
