package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := execute(root)
	return out.String(), err
}

func TestTopicsCommand(t *testing.T) {
	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Learn Crypto")
	assert.Contains(t, out, " 5  What is DeFi?  (Learn and earn: 0.001 ETH)")
	assert.Contains(t, out, "Talk about BASE, the side chaine of Ethereum backed by Coinbase")
}

func TestCallCommand(t *testing.T) {
	var got map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()
	t.Setenv("CRYPTOCALL_API_ENDPOINT", backend.URL)

	out, err := run(t, "call", "--phone", "+15551234567", "--wallet", "0xABCDEF0123456789", "--learn", "5")
	require.NoError(t, err)
	assert.Equal(t, "Call request successfully sent!\n", out)
	assert.Equal(t, map[string]string{
		"phoneNumber":   "+15551234567",
		"walletAddress": "0xABCDEF0123456789",
		"topic":         "What is DeFi?",
	}, got)
}

func TestCallCommandValidation(t *testing.T) {
	t.Setenv("CRYPTOCALL_API_ENDPOINT", "http://127.0.0.1:1/call")

	out, err := run(t, "call", "--wallet", "0xABCDEF0123456789", "What is DeFi?")
	assert.ErrorIs(t, err, errNotSent)
	assert.Equal(t, "Please enter a valid phone number.\n", out)

	out, err = run(t, "call", "--phone", "+15551234567", "--trade")
	assert.ErrorIs(t, err, errNotSent)
	assert.Equal(t, "Wallet address not found. Please connect your wallet.\n", out)

	_, err = run(t, "call", "--phone", "+15551234567", "--trade", "--learn", "1")
	assert.Error(t, err)
}

func TestWireReleasedAfterFailedCommand(t *testing.T) {
	t.Setenv("CRYPTOCALL_API_ENDPOINT", "http://127.0.0.1:1/call")

	_, err := run(t, "call", "--phone", "+15551234567", "--trade")
	require.ErrorIs(t, err, errNotSent)
	assert.Nil(t, wire)
}

func TestCallCommandNeedsEndpoint(t *testing.T) {
	_, err := run(t, "call", "--trade")
	assert.ErrorContains(t, err, "CRYPTOCALL_API_ENDPOINT")
}

func TestConnectorsCommand(t *testing.T) {
	t.Setenv("CRYPTOCALL_WALLET_ADDRESSES", "0x00000000000000000000000000000000000000aA")

	out, err := run(t, "connectors")
	require.NoError(t, err)
	assert.Equal(t, "coinbase-wallet\tCoinbase Wallet\n", out)
}
