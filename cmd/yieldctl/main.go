package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"gttyield/config"
	"gttyield/core"
	"gttyield/native/tier"
	"gttyield/native/yield"
	"gttyield/observability/logging"
	"gttyield/observability/metrics"
)

const usage = `usage: yieldctl [-config path] <command> [flags]

commands:
  yield      compute capsule accrual
  project    project compounded yield
  milestone  report the next accrual milestone
  split      partition a gross amount per policy
  gate       evaluate tier gate checks
  tiers      list the tier catalog
`

func main() {
	configPath := flag.String("config", "./catalogs.toml", "Path to the tier and split-policy catalog file")
	env := flag.String("env", "", "Deployment environment label for log lines")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	logger := logging.Setup("yieldctl", *env)
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("catalog load failed", "path", *configPath, "error", err)
		os.Exit(1)
	}
	tiers, policies, err := cfg.Catalogs()
	if err != nil {
		logger.Error("catalog validation failed", "error", err)
		os.Exit(1)
	}

	engine := core.NewEngine(tiers, policies)
	engine.SetRecorder(metrics.Engine())

	command := flag.Arg(0)
	args := flag.Args()[1:]
	switch command {
	case "yield":
		err = runYield(engine, args)
	case "project":
		err = runProject(engine, args)
	case "milestone":
		err = runMilestone(engine, args)
	case "split":
		err = runSplit(engine, args)
	case "gate":
		err = runGate(engine, args)
	case "tiers":
		err = runTiers(engine, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func runYield(engine *core.Engine, args []string) error {
	fs := flag.NewFlagSet("yield", flag.ExitOnError)
	createdAt := fs.Int64("created-at", 0, "Capsule creation time as a unix timestamp")
	truth := fs.Uint("truth", 0, "Truth score (0-100)")
	grief := fs.Uint("grief", 0, "Grief score (0-100, informational)")
	sealed := fs.Bool("sealed", false, "Capsule carries a verification seal")
	staked := fs.String("staked", "0", "Staked balance in minor units")
	principal := fs.String("principal", "0", "Capsule principal in minor units")
	baseBps := fs.Uint("base-bps", yield.DefaultBaseAnnualRateBps, "Base annual rate in basis points")
	tierID := fs.String("tier", "", "Apply this tier's yield bonus to the accrued amount")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stakedMinor, err := parseAmount(*staked)
	if err != nil {
		return fmt.Errorf("parse staked balance: %w", err)
	}
	principalMinor, err := parseAmount(*principal)
	if err != nil {
		return fmt.Errorf("parse principal: %w", err)
	}

	input := yield.CapsuleYieldInput{
		CreatedAt:           *createdAt,
		TruthScore:          uint32(*truth),
		GriefScore:          uint32(*grief),
		HasVerificationSeal: *sealed,
		StakedBalanceMinor:  stakedMinor,
		PrincipalMinor:      principalMinor,
		BaseAnnualRateBps:   uint32(*baseBps),
	}

	var result yield.Result
	if *tierID != "" {
		result, err = engine.ComputeTierYield(input, *tierID)
	} else {
		result, err = engine.ComputeYield(input)
	}
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"currentYieldMinor":      result.CurrentYieldMinor.String(),
		"dailyRateBps":           result.DailyRateBps,
		"effectiveAnnualRateBps": result.EffectiveAnnualRateBps,
		"tierBonusBps":           result.TierBonusBps,
		"daysActive":             result.DaysActive,
		"griefScore":             result.GriefScore,
	})
}

func runProject(engine *core.Engine, args []string) error {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	principal := fs.String("principal", "0", "Principal in minor units")
	rateBps := fs.Uint("rate-bps", yield.DefaultBaseAnnualRateBps, "Annual rate in basis points")
	days := fs.Uint("days", 365, "Projection horizon in days")
	periods := fs.Uint("periods", yield.DefaultPeriodsPerYear, "Compounding periods per year")
	if err := fs.Parse(args); err != nil {
		return err
	}
	principalMinor, err := parseAmount(*principal)
	if err != nil {
		return fmt.Errorf("parse principal: %w", err)
	}
	projected := engine.ProjectCompound(principalMinor, uint32(*rateBps), uint32(*days), uint32(*periods))
	return printJSON(map[string]any{"projectedYieldMinor": projected.String()})
}

func runMilestone(engine *core.Engine, args []string) error {
	fs := flag.NewFlagSet("milestone", flag.ExitOnError)
	days := fs.Uint("days", 0, "Capsule age in days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	milestone := engine.NextMilestone(uint32(*days))
	return printJSON(map[string]any{
		"milestoneDays": milestone.MilestoneDays,
		"daysUntil":     milestone.DaysUntil,
		"kind":          milestone.Kind.String(),
	})
}

func runSplit(engine *core.Engine, args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	gross := fs.String("gross", "0", "Gross amount in minor units")
	policy := fs.String("policy", "capsuleMint", "Split policy name")
	referrer := fs.Bool("referrer", false, "A referrer participates in the split")
	if err := fs.Parse(args); err != nil {
		return err
	}
	grossMinor, err := parseAmount(*gross)
	if err != nil {
		return fmt.Errorf("parse gross amount: %w", err)
	}
	result, err := engine.Split(grossMinor, *policy, *referrer)
	if err != nil {
		return err
	}
	allocations := make([]map[string]string, 0, len(result.Allocations))
	for _, alloc := range result.Allocations {
		allocations = append(allocations, map[string]string{
			"role":        string(alloc.Role),
			"amountMinor": alloc.Amount.String(),
		})
	}
	return printJSON(map[string]any{
		"policy":         result.Policy,
		"allocations":    allocations,
		"remainderMinor": result.Remainder.String(),
	})
}

func runGate(engine *core.Engine, args []string) error {
	fs := flag.NewFlagSet("gate", flag.ExitOnError)
	tierID := fs.String("tier", "EXPLORER", "Account tier id")
	mints := fs.Uint("mints", 0, "Mints recorded this period")
	staked := fs.String("staked", "0", "Staked balance in minor units")
	status := fs.String("status", "active", "Subscription status: active, inactive, or trialing")
	capability := fs.String("capability", "", "Capability tag to check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	stakedMinor, err := parseAmount(*staked)
	if err != nil {
		return fmt.Errorf("parse staked balance: %w", err)
	}
	account := tier.AccountState{
		AccountID:          "cli",
		TierID:             *tierID,
		MintsThisPeriod:    uint32(*mints),
		StakedBalanceMinor: stakedMinor,
		SubscriptionStatus: parseStatus(*status),
	}

	canMint, err := engine.CanMint(account)
	if err != nil {
		return err
	}
	canDonate, err := engine.CanDonate(account)
	if err != nil {
		return err
	}
	remaining, err := engine.RemainingQuota(account)
	if err != nil {
		return err
	}
	out := map[string]any{
		"canMint":             canMint,
		"canDonate":           canDonate,
		"remainingQuota":      remaining,
		"subscriptionCurrent": engine.SubscriptionCurrent(account),
	}
	if *capability != "" {
		has, err := engine.HasCapability(account, tier.CapabilityTag(*capability))
		if err != nil {
			return err
		}
		out["hasCapability"] = has
	}
	return printJSON(out)
}

func runTiers(engine *core.Engine, args []string) error {
	fs := flag.NewFlagSet("tiers", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	tiers := engine.Tiers()
	out := make([]map[string]any, 0, len(tiers))
	for _, def := range tiers {
		next, ok, err := engine.NextTier(def.ID)
		if err != nil {
			return err
		}
		entry := map[string]any{
			"id":                def.ID,
			"displayName":       def.DisplayName,
			"priceMonthlyMinor": def.PriceMonthlyMinor,
			"priceYearlyMinor":  def.PriceYearlyMinor,
			"quotaPerPeriod":    def.QuotaPerPeriod,
			"yieldBonusBps":     def.YieldBonusBps,
			"canDonate":         def.CanDonate,
			"capabilities":      def.Capabilities,
		}
		if ok {
			entry["nextTier"] = next.ID
		}
		out = append(out, entry)
	}
	return printJSON(map[string]any{
		"tiers":    out,
		"policies": engine.PolicyNames(),
	})
}

func parseAmount(value string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(value)
	if err != nil {
		return nil, err
	}
	return amount, nil
}

func parseStatus(value string) tier.SubscriptionStatus {
	switch value {
	case "active":
		return tier.SubscriptionActive
	case "trialing":
		return tier.SubscriptionTrialing
	default:
		return tier.SubscriptionInactive
	}
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
