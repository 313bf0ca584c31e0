package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.Service.HTTPAddr)
	assert.Equal(t, time.Minute, cfg.Service.HMACClockSkew)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Service.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), cfg.Call.Timeout)
	assert.Equal(t, "ETH", cfg.Chain.Symbol)
	assert.EqualValues(t, 18, cfg.Chain.Decimals)
	assert.Equal(t, "Coinbase Wallet", cfg.Wallet.ConnectorName)
	assert.Empty(t, cfg.Wallet.StaticAddresses)
	assert.Equal(t, "US", cfg.Phone.DefaultRegion)
	assert.Error(t, cfg.RequireEndpoint())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CRYPTOCALL_API_ENDPOINT", "https://calls.example.com/request")
	t.Setenv("CRYPTOCALL_API_TIMEOUT", "5s")
	t.Setenv("CRYPTOCALL_WALLET_ADDRESSES", "0x00000000000000000000000000000000000000aA, 0x00000000000000000000000000000000000000bb")
	t.Setenv("CRYPTOCALL_CHAIN_DECIMALS", "6")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://calls.example.com/request", cfg.Call.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Call.Timeout)
	assert.Equal(t, []string{
		"0x00000000000000000000000000000000000000aA",
		"0x00000000000000000000000000000000000000bb",
	}, cfg.Wallet.StaticAddresses)
	assert.EqualValues(t, 6, cfg.Chain.Decimals)
	assert.NoError(t, cfg.RequireEndpoint())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cryptocall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CRYPTOCALL_ENV: prod\nCRYPTOCALL_HTTP_ADDR: \":9090\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.Service.HTTPAddr)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsRelativeEndpoint(t *testing.T) {
	t.Setenv("CRYPTOCALL_API_ENDPOINT", "/call")
	_, err := Load("")
	assert.Error(t, err)
}
