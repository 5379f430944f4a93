package tier

// CapabilityTag identifies a feature unlocked by a tier.
type CapabilityTag string

const (
	CapabilityBasicVerification CapabilityTag = "basic-verification"
	CapabilityPriorityQueue     CapabilityTag = "priority-queue"
	CapabilityAnalytics         CapabilityTag = "analytics"
	CapabilityAdvancedAnalytics CapabilityTag = "advanced-analytics"
	CapabilityCustomSeals       CapabilityTag = "custom-seals"
	CapabilityMarketplace       CapabilityTag = "marketplace"
	CapabilityAPIAccess         CapabilityTag = "api-access"
	CapabilityBulkOperations    CapabilityTag = "bulk-operations"
	CapabilityCustomBranding    CapabilityTag = "custom-branding"
	CapabilityEarlyAccess       CapabilityTag = "early-access"
)

// Definition captures the immutable configuration for a single account tier.
// Prices are expressed in minor units of the billing currency so that catalog
// ordering never depends on floating point comparisons.
type Definition struct {
	ID                string
	DisplayName       string
	PriceMonthlyMinor uint64
	PriceYearlyMinor  uint64
	QuotaPerPeriod    uint32
	YieldBonusBps     uint32
	CanDonate         bool
	Capabilities      []CapabilityTag
}

// HasCapability reports whether the tier grants the supplied capability.
func (d Definition) HasCapability(tag CapabilityTag) bool {
	for _, granted := range d.Capabilities {
		if granted == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy of the definition with a duplicated capability slice.
func (d Definition) Clone() Definition {
	clone := d
	if len(d.Capabilities) > 0 {
		clone.Capabilities = append([]CapabilityTag(nil), d.Capabilities...)
	}
	return clone
}
