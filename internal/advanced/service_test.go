package advanced

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

type fakeProvider struct {
	txs []etherscan.Transaction
}

func (f fakeProvider) Transactions(_ context.Context, _ string, _ etherscan.ChainID, _ etherscan.FetchOptions) ([]etherscan.Transaction, etherscan.Counts, error) {
	return f.txs, etherscan.Counts{Normal: len(f.txs)}, nil
}

func makeTx(ts int64, from, to string, ethValue float64) etherscan.Transaction {
	return etherscan.Transaction{
		TimeStamp: strconv.FormatInt(ts, 10),
		From:      from,
		To:        to,
		Value:     strconv.FormatInt(int64(ethValue*1e6), 10) + "000000000000",
		GasPrice:  "20000000000",
	}
}

func TestUnitAnalyze(t *testing.T) {
	const root = "0xRoot"

	txs := make([]etherscan.Transaction, 0, 12)
	for i := int64(0); i < 12; i++ {
		txs = append(txs, makeTx(1700000000+i*3600, root, "0xpeer", 1))
	}

	service := NewService(fakeProvider{txs: txs})

	profile, err := service.Analyze(context.Background(), root, etherscan.ChainEthereum)
	require.NoError(t, err)

	assert.Equal(t, "0xroot", profile.Address)
	assert.Equal(t, int64(1), profile.ChainID)
	assert.Equal(t, 12, profile.TransactionCount)
	require.NotNil(t, profile.Baseline)
	require.NotNil(t, profile.Taint)
	assert.Empty(t, profile.MixerInteractions)
}

func TestUnitAnalyzeRejectsBadChain(t *testing.T) {
	service := NewService(fakeProvider{})

	_, err := service.Analyze(context.Background(), "0xabc", etherscan.ChainID(0))
	assert.Error(t, err)
}
