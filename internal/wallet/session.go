package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

type Status string

const (
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

var (
	ErrUnknownConnector = errors.New("unknown connector")
	ErrNotConnected     = errors.New("wallet not connected")
)

// FirstAddress returns addresses[0], or "" when the list is empty.
// Multi-address wallets always submit with their primary address.
func FirstAddress(addresses []string) string {
	if len(addresses) == 0 {
		return ""
	}
	return addresses[0]
}

// Session tracks the connected wallet. Safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	connectors []Connector
	active     Connector
	addresses  []string
}

func NewSession(connectors ...Connector) *Session {
	return &Session{connectors: connectors}
}

// Connectors returns the registered connectors whose display name equals
// name; an empty name returns all of them.
func (s *Session) Connectors(name string) []Connector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Connector, 0, len(s.connectors))
	for _, c := range s.connectors {
		if name == "" || c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Connect asks the connector for its accounts and, if they are valid hex
// addresses, makes it the active session. The reported strings are kept as-is.
func (s *Session) Connect(ctx context.Context, connectorID string) ([]string, error) {
	conn := s.lookup(connectorID)
	if conn == nil {
		return nil, fmt.Errorf("%s: %w", connectorID, ErrUnknownConnector)
	}

	accounts, err := conn.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", connectorID, err)
	}
	for _, a := range accounts {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("connect %s: invalid address %q", connectorID, a)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = conn
	s.addresses = accounts
	out := make([]string, len(accounts))
	copy(out, accounts)
	return out, nil
}

func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
	s.addresses = nil
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return StatusDisconnected
	}
	return StatusConnected
}

// Addresses returns a copy of the connected account list; nil when disconnected.
func (s *Session) Addresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.addresses == nil {
		return nil
	}
	out := make([]string, len(s.addresses))
	copy(out, s.addresses)
	return out
}

// ActiveConnector returns the connected connector's ID.
func (s *Session) ActiveConnector() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return "", ErrNotConnected
	}
	return s.active.ID(), nil
}

func (s *Session) lookup(id string) Connector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.connectors {
		if c.ID() == id {
			return c
		}
	}
	return nil
}
