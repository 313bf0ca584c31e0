package wallet

import (
	"context"
	"errors"
)

// StaticConnector serves a fixed address list, like a watch-only wallet.
type StaticConnector struct {
	ConnectorID   string
	ConnectorName string
	Addresses     []string
}

func (s StaticConnector) ID() string   { return s.ConnectorID }
func (s StaticConnector) Name() string { return s.ConnectorName }

func (s StaticConnector) Accounts(context.Context) ([]string, error) {
	if len(s.Addresses) == 0 {
		return nil, errors.New("no addresses configured")
	}
	out := make([]string, len(s.Addresses))
	copy(out, s.Addresses)
	return out, nil
}
