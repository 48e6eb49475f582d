package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

func TestUnitBuildSummary(t *testing.T) {
	base := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)

	txs := []etherscan.Transaction{
		makeTx("0xAAA", testRoot, 2, base),
		makeTx("0xbbb", testRoot, 3, base.Add(time.Hour)),
		makeTx(testRoot, "0xccc", 1, base.Add(2*time.Hour)),
	}

	summary := BuildSummary(testRoot, etherscan.ChainEthereum, txs)

	assert.Equal(t, 3, summary.TotalTransactions)
	assert.InDelta(t, 5.0, summary.TotalVolumeIn, 1e-9)
	assert.InDelta(t, 1.0, summary.TotalVolumeOut, 1e-9)
	assert.InDelta(t, 4.0, summary.NetFlow, 1e-9)
	assert.Equal(t, "ethereum", summary.ChainName)

	// sender addresses are lowercased before aggregation
	assert.Contains(t, summary.IncomingAddresses, "0xaaa")

	require.NotEmpty(t, summary.TopVictims)
	assert.Equal(t, "0xbbb", summary.TopVictims[0].Address)

	assert.InDelta(t, 2.0, summary.MedianTransactionValue, 1e-9)
	assert.InDelta(t, 3.0, summary.MaxTransactionValue, 1e-9)
}

func TestUnitBuildGraph(t *testing.T) {
	base := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)

	txs := []etherscan.Transaction{
		makeTx("0xaaa", "0xbbb", 1, base),
		makeTx("0xaaa", "0xbbb", 2, base.Add(time.Minute)),
		makeTx("0xbbb", "0xccc", 3, base.Add(2*time.Minute)),
		{From: "0xddd", To: "", Value: "0", TimeStamp: "0"},
	}

	graph := BuildGraph(txs)

	assert.Equal(t, 3, graph.NodeCount())
	assert.Equal(t, 2, graph.EdgeCount())
	assert.InDelta(t, 3.0, graph.EdgeWeight("0xaaa", "0xbbb"), 1e-9)
}

func TestUnitFilterByDateWindow(t *testing.T) {
	jan := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 15, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	txs := []etherscan.Transaction{
		makeTx("0xaaa", testRoot, 1, jan),
		makeTx("0xaaa", testRoot, 1, feb),
		makeTx("0xaaa", testRoot, 1, mar),
	}

	t.Run("no window keeps everything", func(t *testing.T) {
		assert.Len(t, filterByDateWindow(txs, "", ""), 3)
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		filtered := filterByDateWindow(txs, "2026-02-01", "2026-02-15")
		require.Len(t, filtered, 1)
		assert.Equal(t, feb, filtered[0].Time())
	})

	t.Run("open ended start", func(t *testing.T) {
		assert.Len(t, filterByDateWindow(txs, "2026-02-01", ""), 2)
	})

	t.Run("malformed start date is unbounded", func(t *testing.T) {
		assert.Len(t, filterByDateWindow(txs, "not-a-date", ""), 3)
	})

	t.Run("malformed end date keeps the valid start bound", func(t *testing.T) {
		assert.Len(t, filterByDateWindow(txs, "2026-02-01", "15-03-2026"), 2)
	})
}

func TestUnitSummaryRiskLevel(t *testing.T) {
	for score, expected := range map[int]RiskLevel{
		10: RiskLow,
		35: RiskMedium,
		55: RiskHigh,
		85: RiskCritical,
	} {
		s := Summary{RiskScore: score}
		assert.Equal(t, expected, s.RiskLevel())
	}
}
