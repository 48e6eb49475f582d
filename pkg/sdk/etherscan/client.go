package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultEndpoint is the single Etherscan V2 endpoint serving all chains.
	DefaultEndpoint = "https://api.etherscan.io/v2/api"

	pageSize  = 1000
	pageDelay = 250 * time.Millisecond

	noTransactionsFound = "No transactions found"
)

type (
	Client struct {
		client   *http.Client
		endpoint string
		apiKey   string
	}

	// FetchOptions selects which account actions to combine into one history.
	FetchOptions struct {
		IncludeInternal       bool
		IncludeTokenTransfers bool
	}
)

func NewClient(endpoint, apiKey string, client *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Transactions fetches the full paginated history for an address, combining
// normal transactions with internal and token transfers when requested.
func (c *Client) Transactions(ctx context.Context, address string, chainID ChainID, opts FetchOptions) ([]Transaction, Counts, error) {
	if c.apiKey == "" {
		return nil, Counts{}, fmt.Errorf("missing etherscan api key")
	}
	if err := chainID.Validate(); err != nil {
		return nil, Counts{}, err
	}

	var (
		combined []Transaction
		counts   Counts
	)

	normal, err := c.fetchAction(ctx, address, chainID, "txlist", TxTypeNormal)
	if err != nil {
		return nil, Counts{}, fmt.Errorf("fetch txlist: %w", err)
	}
	counts.Normal = len(normal)
	combined = append(combined, normal...)

	if opts.IncludeInternal {
		internal, err := c.fetchAction(ctx, address, chainID, "txlistinternal", TxTypeInternal)
		if err != nil {
			return nil, Counts{}, fmt.Errorf("fetch txlistinternal: %w", err)
		}
		counts.Internal = len(internal)
		combined = append(combined, internal...)
	}

	if opts.IncludeTokenTransfers {
		tokens, err := c.fetchAction(ctx, address, chainID, "tokentx", TxTypeToken)
		if err != nil {
			return nil, Counts{}, fmt.Errorf("fetch tokentx: %w", err)
		}
		counts.Token = len(tokens)
		combined = append(combined, tokens...)
	}

	return combined, counts, nil
}

// Balance returns the latest account balance in ether.
func (c *Client) Balance(ctx context.Context, address string, chainID ChainID) (decimal.Decimal, error) {
	if err := chainID.Validate(); err != nil {
		return decimal.Zero, err
	}

	var resp stringResponse
	err := c.call(ctx, "balance", map[string]string{
		"chainid": strconv.FormatInt(int64(chainID), 10),
		"module":  "account",
		"action":  "balance",
		"address": address,
		"tag":     "latest",
	}, &resp)
	if err != nil {
		return decimal.Zero, err
	}

	if resp.Status != "1" {
		return decimal.Zero, fmt.Errorf("etherscan: %s", resp.Message)
	}

	wei, err := decimal.NewFromString(resp.Result)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance %q: %w", resp.Result, err)
	}

	return wei.Div(weiPerEther), nil
}

// ContractSource fetches verified source code for a contract address.
func (c *Client) ContractSource(ctx context.Context, address string, chainID ChainID) (*ContractSource, error) {
	if err := chainID.Validate(); err != nil {
		return nil, err
	}

	var resp sourceCodeResponse
	err := c.call(ctx, "getsourcecode", map[string]string{
		"chainid": strconv.FormatInt(int64(chainID), 10),
		"module":  "contract",
		"action":  "getsourcecode",
		"address": address,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Status != "1" || len(resp.Result) == 0 {
		return nil, fmt.Errorf("contract source unavailable: %s", resp.Message)
	}

	return &resp.Result[0], nil
}

func (c *Client) fetchAction(ctx context.Context, address string, chainID ChainID, action string, txType TxType) ([]Transaction, error) {
	var all []Transaction

	for page := 1; ; page++ {
		var resp txListResponse
		err := c.call(ctx, action, map[string]string{
			"chainid":    strconv.FormatInt(int64(chainID), 10),
			"module":     "account",
			"action":     action,
			"address":    address,
			"startblock": "0",
			"endblock":   "99999999",
			"page":       strconv.Itoa(page),
			"offset":     strconv.Itoa(pageSize),
			"sort":       "asc",
		}, &resp)
		if err != nil {
			return nil, err
		}

		// status "0" with "No transactions found" is an empty result, not an error
		if resp.Status == "0" && resp.Message != "OK" {
			if resp.Message == noTransactionsFound {
				break
			}
			return nil, fmt.Errorf("etherscan: %s", resp.Message)
		}

		if len(resp.Result) == 0 {
			break
		}

		for i := range resp.Result {
			resp.Result[i].Type = txType
		}
		all = append(all, resp.Result...)

		if len(resp.Result) < pageSize {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pageDelay):
		}
	}

	return all, nil
}

func (c *Client) call(ctx context.Context, alias string, params map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	q.Add("apikey", c.apiKey)
	req.URL.RawQuery = q.Encode()

	req.Header.Add("alias", alias)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request do: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal body: %w", err)
	}

	return nil
}
