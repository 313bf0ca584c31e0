package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EthClient talks to an Ethereum JSON-RPC node. It serves balance queries
// and, through RPCConnector, the node's eth_accounts.
type EthClient struct {
	client *ethclient.Client
}

func NewEthClient(ctx context.Context, rpcURL string) (*EthClient, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	cli, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return &EthClient{client: cli}, nil
}

func (c *EthClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *EthClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return c.client.BalanceAt(ctx, account, blockNumber)
}

// Accounts calls eth_accounts on the node.
func (c *EthClient) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := c.client.Client().CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts: %w", err)
	}
	return accounts, nil
}

func (c *EthClient) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("rpc client not configured")
	}
	_, err := c.client.BlockNumber(ctx)
	return err
}

// AccountLister is satisfied by EthClient.
type AccountLister interface {
	Accounts(ctx context.Context) ([]string, error)
}

// RPCConnector exposes a node's unlocked accounts as a wallet connector.
type RPCConnector struct {
	ConnectorID   string
	ConnectorName string
	Node          AccountLister
}

func (r RPCConnector) ID() string   { return r.ConnectorID }
func (r RPCConnector) Name() string { return r.ConnectorName }

func (r RPCConnector) Accounts(ctx context.Context) ([]string, error) {
	if r.Node == nil {
		return nil, fmt.Errorf("connector %s has no rpc node", r.ConnectorID)
	}
	return r.Node.Accounts(ctx)
}
