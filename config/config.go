package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"gttyield/native/split"
	"gttyield/native/tier"
)

// TierConfig is the TOML representation of one tier definition. Signed fields
// let the loader reject negative values explicitly instead of silently
// wrapping them through an unsigned decode.
type TierConfig struct {
	ID             string   `toml:"id"`
	DisplayName    string   `toml:"display_name"`
	PriceMonthly   int64    `toml:"price_monthly_minor"`
	PriceYearly    int64    `toml:"price_yearly_minor"`
	QuotaPerPeriod int64    `toml:"quota_per_period"`
	YieldBonusBps  int64    `toml:"yield_bonus_bps"`
	CanDonate      bool     `toml:"can_donate"`
	Capabilities   []string `toml:"capabilities"`
}

// ShareConfig is the TOML representation of one policy share. Share order in
// the file is the declaration order used for remainder assignment.
type ShareConfig struct {
	Role    string `toml:"role"`
	Percent int64  `toml:"percent"`
}

// PolicyConfig is the TOML representation of one split policy.
type PolicyConfig struct {
	Name   string        `toml:"name"`
	Shares []ShareConfig `toml:"share"`
}

// Config aggregates the tier catalog and split-policy catalog as decoded from
// disk. It is only an interchange shape; the engine consumes the validated
// catalogs produced by Catalogs.
type Config struct {
	Tiers    []TierConfig   `toml:"tier"`
	Policies []PolicyConfig `toml:"policy"`
}

// Load reads the catalog file at path, creating a default file when none
// exists yet. Decoding or validation failures wrap the respective catalog's
// malformed-catalog sentinel and must abort startup; there is no degraded
// partial-catalog mode.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", tier.ErrMalformedCatalog, path, err)
	}
	if _, _, err := cfg.Catalogs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Catalogs validates the decoded configuration and builds the immutable
// catalogs consumed by the engine.
func (c *Config) Catalogs() (*tier.Catalog, *split.Catalog, error) {
	defs := make([]tier.Definition, 0, len(c.Tiers))
	for _, tc := range c.Tiers {
		if tc.PriceMonthly < 0 || tc.PriceYearly < 0 {
			return nil, nil, fmt.Errorf("%w: tier %q has a negative price", tier.ErrMalformedCatalog, tc.ID)
		}
		if tc.QuotaPerPeriod < 0 {
			return nil, nil, fmt.Errorf("%w: tier %q has a negative quota", tier.ErrMalformedCatalog, tc.ID)
		}
		if tc.YieldBonusBps < 0 {
			return nil, nil, fmt.Errorf("%w: tier %q has a negative yield bonus", tier.ErrMalformedCatalog, tc.ID)
		}
		caps := make([]tier.CapabilityTag, 0, len(tc.Capabilities))
		for _, tag := range tc.Capabilities {
			caps = append(caps, tier.CapabilityTag(tag))
		}
		defs = append(defs, tier.Definition{
			ID:                tc.ID,
			DisplayName:       tc.DisplayName,
			PriceMonthlyMinor: uint64(tc.PriceMonthly),
			PriceYearlyMinor:  uint64(tc.PriceYearly),
			QuotaPerPeriod:    uint32(tc.QuotaPerPeriod),
			YieldBonusBps:     uint32(tc.YieldBonusBps),
			CanDonate:         tc.CanDonate,
			Capabilities:      caps,
		})
	}
	tierCatalog, err := tier.NewCatalog(defs)
	if err != nil {
		return nil, nil, err
	}

	policies := make([]split.Policy, 0, len(c.Policies))
	for _, pc := range c.Policies {
		shares := make([]split.Share, 0, len(pc.Shares))
		for _, sc := range pc.Shares {
			if sc.Percent < 0 {
				return nil, nil, fmt.Errorf("%w: policy %q role %q has a negative percent", split.ErrMalformedCatalog, pc.Name, sc.Role)
			}
			shares = append(shares, split.Share{Role: split.Role(sc.Role), Percent: uint32(sc.Percent)})
		}
		policies = append(policies, split.Policy{Name: pc.Name, Shares: shares})
	}
	policyCatalog, err := split.NewCatalog(policies)
	if err != nil {
		return nil, nil, err
	}
	return tierCatalog, policyCatalog, nil
}

// Default returns the built-in production catalogs: the four account tiers
// and the two revenue split policies.
func Default() *Config {
	return &Config{
		Tiers: []TierConfig{
			{
				ID:             "EXPLORER",
				DisplayName:    "Explorer",
				QuotaPerPeriod: 5,
				Capabilities:   []string{string(tier.CapabilityBasicVerification)},
			},
			{
				ID:             "SEEKER",
				DisplayName:    "Seeker",
				PriceMonthly:   900,
				PriceYearly:    9000,
				QuotaPerPeriod: 25,
				YieldBonusBps:  500,
				CanDonate:      true,
				Capabilities: []string{
					string(tier.CapabilityBasicVerification),
					string(tier.CapabilityPriorityQueue),
					string(tier.CapabilityAnalytics),
				},
			},
			{
				ID:             "CREATOR",
				DisplayName:    "Creator",
				PriceMonthly:   2900,
				PriceYearly:    29000,
				QuotaPerPeriod: 100,
				YieldBonusBps:  1000,
				CanDonate:      true,
				Capabilities: []string{
					string(tier.CapabilityBasicVerification),
					string(tier.CapabilityPriorityQueue),
					string(tier.CapabilityAnalytics),
					string(tier.CapabilityAdvancedAnalytics),
					string(tier.CapabilityCustomSeals),
					string(tier.CapabilityMarketplace),
				},
			},
			{
				ID:             "SOVEREIGN",
				DisplayName:    "Sovereign",
				PriceMonthly:   9900,
				PriceYearly:    99000,
				QuotaPerPeriod: 500,
				YieldBonusBps:  2500,
				CanDonate:      true,
				Capabilities: []string{
					string(tier.CapabilityBasicVerification),
					string(tier.CapabilityPriorityQueue),
					string(tier.CapabilityAnalytics),
					string(tier.CapabilityAdvancedAnalytics),
					string(tier.CapabilityCustomSeals),
					string(tier.CapabilityMarketplace),
					string(tier.CapabilityAPIAccess),
					string(tier.CapabilityBulkOperations),
					string(tier.CapabilityCustomBranding),
					string(tier.CapabilityEarlyAccess),
				},
			},
		},
		Policies: []PolicyConfig{
			{
				Name: "capsuleMint",
				Shares: []ShareConfig{
					{Role: string(split.RoleCreator), Percent: 70},
					{Role: string(split.RoleDAO), Percent: 20},
					{Role: string(split.RolePlatform), Percent: 10},
				},
			},
			{
				Name: "capsuleUnlock",
				Shares: []ShareConfig{
					{Role: string(split.RoleCreator), Percent: 50},
					{Role: string(split.RoleReferrer), Percent: 25},
					{Role: string(split.RoleDAO), Percent: 25},
				},
			},
		},
	}
}

func createDefault(path string) (*Config, error) {
	cfg := Default()
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create default catalog file: %w", err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode default catalog: %w", err)
	}
	return cfg, nil
}
