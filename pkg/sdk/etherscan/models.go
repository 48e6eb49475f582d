package etherscan

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TxType distinguishes the Etherscan account actions a transaction came from.
type TxType string

const (
	TxTypeNormal   TxType = "normal"
	TxTypeInternal TxType = "internal"
	TxTypeToken    TxType = "token"
)

type (
	// envelope is the common Etherscan V2 response wrapper.
	envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	txListResponse struct {
		envelope
		Result []Transaction `json:"result"`
	}

	stringResponse struct {
		envelope
		Result string `json:"result"`
	}

	sourceCodeResponse struct {
		envelope
		Result []ContractSource `json:"result"`
	}
)

// Transaction is a single account transaction as returned by the V2 API.
// Numeric fields arrive as decimal strings.
type Transaction struct {
	Hash        string `json:"hash"`
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	Gas         string `json:"gas"`
	GasPrice    string `json:"gasPrice"`
	GasUsed     string `json:"gasUsed"`
	IsError     string `json:"isError"`

	ContractAddress string `json:"contractAddress"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`

	Type TxType `json:"-"`
}

var weiPerEther = decimal.New(1, 18)

// Time converts the unix timestamp string, zero time on malformed input.
func (t Transaction) Time() time.Time {
	ts, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(ts, 0).UTC()
}

// Amount converts the wei value string to ether, zero on malformed input.
func (t Transaction) Amount() decimal.Decimal {
	wei, err := decimal.NewFromString(t.Value)
	if err != nil {
		return decimal.Zero
	}

	return wei.Div(weiPerEther)
}

// GasPriceWei parses the gas price, zero on malformed input.
func (t Transaction) GasPriceWei() decimal.Decimal {
	gp, err := decimal.NewFromString(t.GasPrice)
	if err != nil {
		return decimal.Zero
	}

	return gp
}

// Counts is the per-action breakdown for a combined transaction fetch.
type Counts struct {
	Normal   int `json:"normal"`
	Internal int `json:"internal"`
	Token    int `json:"token"`
}

// Total sums all fetched transaction kinds.
func (c Counts) Total() int {
	return c.Normal + c.Internal + c.Token
}

// ContractSource is the verified source payload of module=contract&action=getsourcecode.
type ContractSource struct {
	SourceCode           string `json:"SourceCode"`
	ABI                  string `json:"ABI"`
	ContractName         string `json:"ContractName"`
	CompilerVersion      string `json:"CompilerVersion"`
	OptimizationUsed     string `json:"OptimizationUsed"`
	ConstructorArguments string `json:"ConstructorArguments"`
	LicenseType          string `json:"LicenseType"`
	Proxy                string `json:"Proxy"`
	Implementation       string `json:"Implementation"`
}

// Verified reports whether the explorer holds source code for the contract.
func (s ContractSource) Verified() bool {
	return s.SourceCode != ""
}
