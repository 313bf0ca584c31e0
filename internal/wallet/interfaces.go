package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Connector is a named integration with a wallet provider.
type Connector interface {
	ID() string
	Name() string
	// Accounts returns the addresses the provider exposes, primary first.
	Accounts(ctx context.Context) ([]string, error)
}

// BalanceReader is the slice of ethclient.Client used for balance queries.
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// HealthChecker exposes a connectivity check against the RPC node.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
