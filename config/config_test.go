package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gttyield/native/split"
	"gttyield/native/tier"
)

func TestDefaultCatalogsValidate(t *testing.T) {
	tiers, policies, err := Default().Catalogs()
	require.NoError(t, err)
	require.Equal(t, 4, tiers.Len())

	ordered := tiers.Tiers()
	require.Equal(t, []string{"EXPLORER", "SEEKER", "CREATOR", "SOVEREIGN"},
		[]string{ordered[0].ID, ordered[1].ID, ordered[2].ID, ordered[3].ID})

	sovereign, err := tiers.Get("SOVEREIGN")
	require.NoError(t, err)
	require.Equal(t, uint32(2500), sovereign.YieldBonusBps)
	require.True(t, sovereign.HasCapability(tier.CapabilityAPIAccess))

	require.ElementsMatch(t, []string{"capsuleMint", "capsuleUnlock"}, policies.Names())
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.toml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Tiers, 4)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "default catalog file should be written")

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Tiers, reloaded.Tiers)
	require.Equal(t, cfg.Policies, reloaded.Policies)
}

func TestLoadRejectsMalformedCatalog(t *testing.T) {
	t.Run("bad toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalogs.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[tier]\nid="), 0o644))
		_, err := Load(path)
		require.ErrorIs(t, err, tier.ErrMalformedCatalog)
	})

	t.Run("negative quota", func(t *testing.T) {
		cfg := Default()
		cfg.Tiers[0].QuotaPerPeriod = -1
		_, _, err := cfg.Catalogs()
		require.ErrorIs(t, err, tier.ErrMalformedCatalog)
	})

	t.Run("negative yield bonus", func(t *testing.T) {
		cfg := Default()
		cfg.Tiers[1].YieldBonusBps = -500
		_, _, err := cfg.Catalogs()
		require.ErrorIs(t, err, tier.ErrMalformedCatalog)
	})

	t.Run("policy sum off by one", func(t *testing.T) {
		cfg := Default()
		cfg.Policies[0].Shares[0].Percent = 71
		_, _, err := cfg.Catalogs()
		require.ErrorIs(t, err, split.ErrMalformedCatalog)
	})

	t.Run("negative share percent", func(t *testing.T) {
		cfg := Default()
		cfg.Policies[0].Shares[0].Percent = -70
		_, _, err := cfg.Catalogs()
		require.ErrorIs(t, err, split.ErrMalformedCatalog)
	})
}

func TestLoadValidatesOnRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.toml")
	malformed := `
[[tier]]
id = "EXPLORER"
quota_per_period = 5

[[policy]]
name = "capsuleMint"

[[policy.share]]
role = "creator"
percent = 70

[[policy.share]]
role = "dao"
percent = 20
`
	require.NoError(t, os.WriteFile(path, []byte(malformed), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, split.ErrMalformedCatalog))
}
