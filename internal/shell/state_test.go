package shell

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptocall/internal/callrequest"
	"cryptocall/internal/notify"
	"cryptocall/internal/phoneinput"
	"cryptocall/internal/wallet"
)

const (
	addrA = "0x00000000000000000000000000000000000000aA"
	addrB = "0x00000000000000000000000000000000000000bb"
)

type submitCall struct {
	phone, wallet, topic string
}

type stubSubmitter struct {
	mu    sync.Mutex
	calls []submitCall
}

func (s *stubSubmitter) Submit(_ context.Context, phone, wallet, topic string, n notify.Notifier) callrequest.Outcome {
	s.mu.Lock()
	s.calls = append(s.calls, submitCall{phone, wallet, topic})
	s.mu.Unlock()
	n.Notify(callrequest.MsgSent)
	return callrequest.OutcomeSent
}

type stubBalances struct {
	err   error
	calls int
}

func (b *stubBalances) Balance(_ context.Context, address string) (wallet.Balance, error) {
	b.calls++
	if b.err != nil {
		return wallet.Balance{}, b.err
	}
	return wallet.Balance{Address: address, Value: big.NewInt(1), Formatted: "0.000000000000000001", Symbol: "ETH"}, nil
}

func newTestState(balances BalanceSource) (*State, *stubSubmitter) {
	session := wallet.NewSession(
		wallet.StaticConnector{ConnectorID: "coinbase", ConnectorName: "Coinbase Wallet", Addresses: []string{addrA, addrB}},
	)
	sub := &stubSubmitter{}
	return New(session, phoneinput.New("US"), sub, balances, nil), sub
}

func TestDefaults(t *testing.T) {
	st, _ := newTestState(nil)
	snap := st.Snapshot()

	assert.Equal(t, TabLearn, snap.Tab)
	assert.Equal(t, "", snap.PhoneNumber)
	assert.Equal(t, "", snap.PhoneLabel)
	assert.Equal(t, wallet.StatusDisconnected, snap.Status)
	assert.Nil(t, snap.Balance)
}

func TestSetTab(t *testing.T) {
	st, _ := newTestState(nil)

	require.NoError(t, st.SetTab(TabTrade))
	assert.Equal(t, TabTrade, st.Snapshot().Tab)

	err := st.SetTab("history")
	assert.True(t, errors.Is(err, ErrUnknownTab))
	assert.Equal(t, TabTrade, st.Snapshot().Tab)
}

func TestCallRequestReadsCurrentValues(t *testing.T) {
	st, sub := newTestState(nil)
	rec := &notify.Recorder{}

	st.CallRequest(context.Background(), "What is DeFi?", rec)

	st.SetPhone("+1 (555) 123-4567")
	_, err := st.Connect(context.Background(), "coinbase")
	require.NoError(t, err)
	st.CallRequest(context.Background(), "Blockchain Basics", rec)

	st.Disconnect()
	st.CallRequest(context.Background(), "What is BASE?", rec)

	assert.Equal(t, []submitCall{
		{"", "", "What is DeFi?"},
		{"+15551234567", addrA, "Blockchain Basics"},
		{"+15551234567", "", "What is BASE?"},
	}, sub.calls)
	assert.Len(t, rec.Messages(), 3)
}

func TestConnectLoadsBalance(t *testing.T) {
	balances := &stubBalances{}
	st, _ := newTestState(balances)

	addrs, err := st.Connect(context.Background(), "coinbase")
	require.NoError(t, err)
	assert.Equal(t, []string{addrA, addrB}, addrs)

	snap := st.Snapshot()
	assert.Equal(t, wallet.StatusConnected, snap.Status)
	assert.Equal(t, "coinbase", snap.Connector)
	require.NotNil(t, snap.Balance)
	assert.Equal(t, addrA, snap.Balance.Address)

	_, err = st.RefetchBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, balances.calls)

	st.Disconnect()
	assert.Nil(t, st.Snapshot().Balance)
	_, err = st.RefetchBalance(context.Background())
	assert.True(t, errors.Is(err, wallet.ErrNotConnected))
}

func TestConnectSurvivesBalanceFailure(t *testing.T) {
	st, _ := newTestState(&stubBalances{err: errors.New("rpc down")})

	_, err := st.Connect(context.Background(), "coinbase")
	require.NoError(t, err)

	snap := st.Snapshot()
	assert.Equal(t, wallet.StatusConnected, snap.Status)
	assert.Nil(t, snap.Balance)
}

func TestRefetchWithoutProvider(t *testing.T) {
	st, _ := newTestState(nil)
	_, err := st.RefetchBalance(context.Background())
	assert.True(t, errors.Is(err, ErrBalanceUnavailable))
}

func TestSnapshotPhoneLabel(t *testing.T) {
	st, _ := newTestState(nil)
	st.SetPhone("650 253 0000")

	snap := st.Snapshot()
	assert.Equal(t, "+16502530000", snap.PhoneNumber)
	assert.Equal(t, "+1 650-253-0000", snap.PhoneLabel)
}
