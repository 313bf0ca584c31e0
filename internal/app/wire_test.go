package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptocall/internal/catalog"
	"cryptocall/internal/config"
	"cryptocall/internal/wallet"
)

func baseConfig() *config.AppConfig {
	return &config.AppConfig{
		Env:     "dev",
		Service: config.ServiceConfig{HMACClockSkew: time.Minute},
		Chain:   config.ChainConfig{Symbol: "ETH", Decimals: 18},
		Wallet: config.WalletConfig{
			ConnectorName:   "Coinbase Wallet",
			StaticAddresses: []string{"0x00000000000000000000000000000000000000aA"},
			RPCConnectorTag: "Injected",
		},
		Phone: config.PhoneConfig{DefaultRegion: "US"},
	}
}

func TestNewWireMinimal(t *testing.T) {
	w, err := NewWire(context.Background(), baseConfig(), nil)
	require.NoError(t, err)
	defer w.Close()

	assert.IsType(t, catalog.Static{}, w.Topics)
	assert.Nil(t, w.Chain)
	assert.Nil(t, w.Balances)
	assert.Nil(t, w.Submitter)

	conns := w.Session.Connectors("Coinbase Wallet")
	require.Len(t, conns, 1)
	assert.Equal(t, "coinbase-wallet", conns[0].ID())

	_, err = w.State()
	assert.Error(t, err)
}

func TestNewWireFull(t *testing.T) {
	cfg := baseConfig()
	cfg.Call.Endpoint = "http://127.0.0.1:1/call"
	cfg.Chain.RPCURL = "http://127.0.0.1:1"
	cfg.Wallet.RPCConnectorURL = "http://127.0.0.1:1"
	cfg.Catalog.Path = "/tmp/topics.yaml"

	w, err := NewWire(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, catalog.FileSource{Path: "/tmp/topics.yaml"}, w.Topics)
	assert.NotNil(t, w.Balances)
	require.NotNil(t, w.Submitter)
	assert.Equal(t, "http://127.0.0.1:1/call", w.Submitter.Endpoint())
	assert.Len(t, w.Session.Connectors(""), 2)

	st, err := w.State()
	require.NoError(t, err)
	assert.Equal(t, wallet.StatusDisconnected, st.Snapshot().Status)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "coinbase-wallet", slug("Coinbase  Wallet"))
	assert.Equal(t, "injected", slug("Injected"))
}
