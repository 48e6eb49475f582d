package chainconn

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/openchain-labs/openchain-ir/internal/metrics"
)

var weiPerEther = decimal.New(1, 18)

// ValidateAddress reports whether the string is a well-formed hex address.
func ValidateAddress(address string) bool {
	return common.IsHexAddress(address)
}

// Connector reads live chain state over JSON-RPC. It complements the
// Etherscan history fetcher with node-backed balance and block lookups.
type Connector struct {
	rpcURL string
	client *ethclient.Client
}

func NewConnector(rpcURL string) *Connector {
	return &Connector{rpcURL: rpcURL}
}

// Connect dials the configured node. A connector with no RPC URL stays
// disconnected and every lookup fails.
func (c *Connector) Connect(ctx context.Context) error {
	if c.rpcURL == "" {
		return fmt.Errorf("no rpc url configured")
	}

	client, err := ethclient.DialContext(ctx, c.rpcURL)
	if err != nil {
		return fmt.Errorf("connect to node: %w", err)
	}

	c.client = client
	log.Info().Str("rpc_url", c.rpcURL).Msg("connected to chain node")

	return nil
}

func (c *Connector) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Balance returns the current balance in ETH.
func (c *Connector) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	if c.client == nil {
		return decimal.Zero, fmt.Errorf("node connection is not established")
	}
	if !ValidateAddress(address) {
		return decimal.Zero, fmt.Errorf("invalid address: %s", address)
	}

	var err error
	defer func(start time.Time) {
		metrics.CollectRequestsMetric("ethclient", "balance_at", err, start)
	}(time.Now())

	wei, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance at: %w", err)
	}

	return decimal.NewFromBigInt(wei, 0).Div(weiPerEther), nil
}

// LatestBlock returns the current head block number.
func (c *Connector) LatestBlock(ctx context.Context) (uint64, error) {
	if c.client == nil {
		return 0, fmt.Errorf("node connection is not established")
	}

	number, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("block number: %w", err)
	}

	return number, nil
}
