package tier

// Gate enforces quota and capability checks against the tier catalog. It holds
// no mutable state and is safe for concurrent use.
type Gate struct {
	catalog *Catalog
}

// NewGate constructs a gate over the supplied catalog.
func NewGate(catalog *Catalog) *Gate {
	return &Gate{catalog: catalog}
}

// CanMint reports whether the account has mint quota remaining this period.
func (g *Gate) CanMint(account AccountState) (bool, error) {
	def, err := g.lookup(account)
	if err != nil {
		return false, err
	}
	return account.MintsThisPeriod < def.QuotaPerPeriod, nil
}

// CanDonate reports whether the account's tier permits donations.
func (g *Gate) CanDonate(account AccountState) (bool, error) {
	def, err := g.lookup(account)
	if err != nil {
		return false, err
	}
	return def.CanDonate, nil
}

// HasCapability reports whether the account's tier grants the capability.
func (g *Gate) HasCapability(account AccountState, tag CapabilityTag) (bool, error) {
	def, err := g.lookup(account)
	if err != nil {
		return false, err
	}
	return def.HasCapability(tag), nil
}

// RemainingQuota returns the mints left this period, saturating at zero when
// the recorded usage already exceeds the tier quota.
func (g *Gate) RemainingQuota(account AccountState) (uint32, error) {
	def, err := g.lookup(account)
	if err != nil {
		return 0, err
	}
	if account.MintsThisPeriod >= def.QuotaPerPeriod {
		return 0, nil
	}
	return def.QuotaPerPeriod - account.MintsThisPeriod, nil
}

// UpgradeTier returns a copy of the account on the new tier. Payment and
// eligibility checks belong to the external upgrade workflow; the gate only
// records a change it is told is authorized.
func (g *Gate) UpgradeTier(account AccountState, newTierID string) (AccountState, error) {
	def, err := g.catalogGet(newTierID)
	if err != nil {
		return AccountState{}, err
	}
	next := account.Clone()
	next.TierID = def.ID
	return next, nil
}

// SubscriptionCurrent reports whether the account's subscription entitles it
// to paid features. Trialing accounts are treated the same as active ones.
func (g *Gate) SubscriptionCurrent(account AccountState) bool {
	return account.SubscriptionStatus == SubscriptionActive ||
		account.SubscriptionStatus == SubscriptionTrialing
}

func (g *Gate) lookup(account AccountState) (Definition, error) {
	return g.catalogGet(account.TierID)
}

func (g *Gate) catalogGet(id string) (Definition, error) {
	if g == nil || g.catalog == nil {
		return Definition{}, ErrUnknownTier
	}
	return g.catalog.Get(id)
}
