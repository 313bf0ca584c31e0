package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Balance is a native-currency balance at the latest block.
type Balance struct {
	Address   string   `json:"address"`
	Value     *big.Int `json:"value"`
	Decimals  int32    `json:"decimals"`
	Formatted string   `json:"formatted"`
	Symbol    string   `json:"symbol"`
}

// BalanceProvider reads balances. Every call hits the node; refetching is
// just calling Balance again.
type BalanceProvider struct {
	reader   BalanceReader
	symbol   string
	decimals int32
}

func NewBalanceProvider(reader BalanceReader, symbol string, decimals int32) *BalanceProvider {
	return &BalanceProvider{reader: reader, symbol: symbol, decimals: decimals}
}

func (p *BalanceProvider) Balance(ctx context.Context, address string) (Balance, error) {
	if !common.IsHexAddress(address) {
		return Balance{}, fmt.Errorf("invalid address %q", address)
	}
	wei, err := p.reader.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return Balance{}, fmt.Errorf("balance of %s: %w", address, err)
	}
	return Balance{
		Address:   address,
		Value:     wei,
		Decimals:  p.decimals,
		Formatted: FormatUnits(wei, p.decimals),
		Symbol:    p.symbol,
	}, nil
}

// FormatUnits renders value scaled down by 10^decimals without trailing zeros.
func FormatUnits(value *big.Int, decimals int32) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -decimals).String()
}
