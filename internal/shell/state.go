// Package shell owns the view state the call widget renders from: which tab
// is showing, the phone number, and everything derived from the wallet
// session. State changes only through the setters below; call requests read
// their inputs from here at the moment they are triggered.
package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cryptocall/internal/callrequest"
	"cryptocall/internal/notify"
	"cryptocall/internal/phoneinput"
	"cryptocall/internal/wallet"
)

type Tab string

const (
	TabLearn Tab = "learn"
	TabTrade Tab = "trade"
)

var (
	ErrUnknownTab         = errors.New("unknown tab")
	ErrBalanceUnavailable = errors.New("balance queries are not configured")
)

// Submitter is satisfied by *callrequest.Submitter.
type Submitter interface {
	Submit(ctx context.Context, phoneNumber, walletAddress, topic string, n notify.Notifier) callrequest.Outcome
}

// BalanceSource is satisfied by *wallet.BalanceProvider.
type BalanceSource interface {
	Balance(ctx context.Context, address string) (wallet.Balance, error)
}

// Snapshot is a point-in-time copy of the view state.
type Snapshot struct {
	Tab         Tab             `json:"tab"`
	PhoneNumber string          `json:"phoneNumber"`
	PhoneLabel  string          `json:"phoneLabel"`
	Status      wallet.Status   `json:"status"`
	Connector   string          `json:"connector,omitempty"`
	Addresses   []string        `json:"addresses"`
	Balance     *wallet.Balance `json:"balance,omitempty"`
}

type State struct {
	mu      sync.RWMutex
	tab     Tab
	balance *wallet.Balance

	phone     *phoneinput.Input
	session   *wallet.Session
	balances  BalanceSource
	submitter Submitter
	logger    *zap.SugaredLogger
}

// New builds a state starting on the learn tab with an empty phone number.
// balances may be nil, in which case balance refetches fail with
// ErrBalanceUnavailable.
func New(session *wallet.Session, phone *phoneinput.Input, submitter Submitter, balances BalanceSource, logger *zap.SugaredLogger) *State {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &State{
		tab:       TabLearn,
		phone:     phone,
		session:   session,
		balances:  balances,
		submitter: submitter,
		logger:    logger,
	}
}

func (s *State) SetTab(tab Tab) error {
	if tab != TabLearn && tab != TabTrade {
		return fmt.Errorf("%q: %w", tab, ErrUnknownTab)
	}
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	return nil
}

// SetPhone stores the phone input's new value and returns it as stored.
func (s *State) SetPhone(raw string) string {
	return s.phone.Set(raw)
}

func (s *State) Connectors(name string) []wallet.Connector {
	return s.session.Connectors(name)
}

// Connect activates a connector and loads the balance of its first address.
// A failed balance load leaves the session connected.
func (s *State) Connect(ctx context.Context, connectorID string) ([]string, error) {
	addrs, err := s.session.Connect(ctx, connectorID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.balance = nil
	s.mu.Unlock()

	if s.balances != nil {
		if _, err := s.RefetchBalance(ctx); err != nil {
			s.logger.Warnw("initial balance load failed", "connector", connectorID, "error", err)
		}
	}
	return addrs, nil
}

func (s *State) Disconnect() {
	s.session.Disconnect()
	s.mu.Lock()
	s.balance = nil
	s.mu.Unlock()
}

// RefetchBalance re-reads the balance of the first connected address.
func (s *State) RefetchBalance(ctx context.Context) (wallet.Balance, error) {
	if s.balances == nil {
		return wallet.Balance{}, ErrBalanceUnavailable
	}
	addr := wallet.FirstAddress(s.session.Addresses())
	if addr == "" {
		return wallet.Balance{}, wallet.ErrNotConnected
	}
	bal, err := s.balances.Balance(ctx, addr)
	if err != nil {
		return wallet.Balance{}, err
	}
	s.mu.Lock()
	s.balance = &bal
	s.mu.Unlock()
	return bal, nil
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Tab:         s.tab,
		PhoneNumber: s.phone.Value(),
		PhoneLabel:  s.phone.Display(),
		Status:      s.session.Status(),
		Addresses:   s.session.Addresses(),
	}
	if id, err := s.session.ActiveConnector(); err == nil {
		snap.Connector = id
	}
	if s.balance != nil {
		b := *s.balance
		snap.Balance = &b
	}
	return snap
}

// CallRequest captures the current phone number and first wallet address and
// hands them to the submitter. No lock is held across the network call.
func (s *State) CallRequest(ctx context.Context, topic string, n notify.Notifier) callrequest.Outcome {
	phone := s.phone.Value()
	addr := wallet.FirstAddress(s.session.Addresses())
	return s.submitter.Submit(ctx, phone, addr, topic, n)
}
