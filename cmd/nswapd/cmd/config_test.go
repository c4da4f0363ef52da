package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nativeswap/nativeswap/app"
	"github.com/nativeswap/nativeswap/testutil/sample"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newViper(t.TempDir()))
	require.NoError(t, err)

	require.Equal(t, "nativeswap-1", cfg.ChainID)
	require.Equal(t, app.DefaultNativeDenom, cfg.NativeDenom)
	require.True(t, cfg.InvariantCheck)
	require.Equal(t, 20*time.Minute, cfg.API.DefaultDeadline)
	require.Equal(t, defaultMetricsPort, cfg.Telemetry.MetricsPort)
	require.Empty(t, cfg.Roles.Admins)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	admin := sample.AccAddress("admin").String()
	t.Setenv("NSWAP_CHAIN_ID", "env-chain")
	t.Setenv("NSWAP_API_RATE_LIMIT_RPS", "7")
	t.Setenv("NSWAP_API_REQUEST_TIMEOUT", "5s")
	t.Setenv("NSWAP_ROLES_ADMINS", admin+", ")

	cfg, err := loadConfig(newViper(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, "env-chain", cfg.ChainID)
	require.Equal(t, 7, cfg.API.RateLimitRPS)
	require.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
	require.Equal(t, []string{admin}, cfg.Roles.Admins)

	appCfg, err := cfg.AppConfig()
	require.NoError(t, err)
	require.Len(t, appCfg.Roles.Admins, 1)
}

func TestInitWritesLoadableConfig(t *testing.T) {
	home := t.TempDir()
	admin := sample.AccAddress("admin").String()
	signers := sample.AccAddresses("signer-", 3)

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{
		"init",
		"--home", home,
		"--chain-id", "test-chain",
		"--admin", admin,
		"--signer", signers[0].String() + "," + signers[1].String(),
		"--signer", signers[2].String(),
		"--allocation", admin + ":uatom:1000",
		"--fee-bps", "25",
	})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "test-chain")

	cfg, err := loadConfig(newViper(home))
	require.NoError(t, err)
	require.Equal(t, "test-chain", cfg.ChainID)
	require.Equal(t, []string{admin}, cfg.Roles.Admins)
	require.Len(t, cfg.Roles.Signers, 3)
	require.Len(t, cfg.API.JWTSecret, 64)
	require.Equal(t, 24*time.Hour, cfg.API.TokenTTL)

	apiCfg, err := cfg.APIConfig()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", apiCfg.Host)
	require.Equal(t, "5000", apiCfg.Port)

	gs, err := app.LoadGenesisFile(filepath.Join(home, "config", genesisFile))
	require.NoError(t, err)
	require.Equal(t, uint64(25), gs.FeeBps)
	require.Len(t, gs.Allocations, 1)

	// a second init refuses to clobber the first
	root = NewRootCmd()
	root.SetArgs([]string{"init", "--home", home, "--admin", admin})
	require.Error(t, root.Execute())
}

func TestSplitList(t *testing.T) {
	require.Nil(t, splitList(""))
	require.Nil(t, splitList("  "))
	require.Equal(t, []string{"a", "b"}, splitList("a, b,,"))
	require.Equal(t, []string{"a", "b"}, splitList([]any{"a", " b "}))
	require.Equal(t, []string{"x"}, splitList([]string{"x"}))
}

func TestParseAllocation(t *testing.T) {
	addr := sample.AccAddress("holder")

	a, err := parseAllocation(addr.String() + ":uatom:42")
	require.NoError(t, err)
	require.Equal(t, addr, a.Address)
	require.Equal(t, "uatom", a.Denom)
	require.Equal(t, int64(42), a.Amount.Int64())

	for _, raw := range []string{
		"uatom:42",
		"notanaddress:uatom:42",
		addr.String() + ":uatom:lots",
	} {
		_, err := parseAllocation(raw)
		require.Error(t, err, raw)
	}
}

func TestSplitHostPort(t *testing.T) {
	host, port, err := splitHostPort("127.0.0.1:8080")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", host)
	require.Equal(t, "8080", port)

	for _, addr := range []string{"localhost", "localhost:0", "localhost:http", "localhost:70000"} {
		_, _, err := splitHostPort(addr)
		require.Error(t, err, addr)
	}
}
