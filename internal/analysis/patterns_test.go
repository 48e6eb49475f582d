package analysis

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const testRoot = "0x000000000000000000000000000000000000root"

func makeTx(from, to string, ethValue float64, ts time.Time) etherscan.Transaction {
	wei := int64(ethValue * 1e6)

	return etherscan.Transaction{
		Hash:      fmt.Sprintf("0x%d", ts.UnixNano()),
		From:      from,
		To:        to,
		Value:     strconv.FormatInt(wei, 10) + "000000000000", // value * 1e18
		TimeStamp: strconv.FormatInt(ts.Unix(), 10),
	}
}

func TestUnitDetectPatterns(t *testing.T) {
	base := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty set fires nothing", func(t *testing.T) {
		patterns := DetectPatterns(nil, testRoot)
		assert.Zero(t, patterns.ActiveCount())
	})

	t.Run("rapid succession", func(t *testing.T) {
		var txs []etherscan.Transaction
		for i := 0; i < 10; i++ {
			txs = append(txs, makeTx("0xaaa", testRoot, 1, base.Add(time.Duration(i*10)*time.Second)))
		}

		patterns := DetectPatterns(txs, testRoot)
		assert.True(t, patterns.RapidSuccession)
	})

	t.Run("spread out transactions are not rapid", func(t *testing.T) {
		var txs []etherscan.Transaction
		for i := 0; i < 10; i++ {
			txs = append(txs, makeTx("0xaaa", testRoot, 1, base.Add(time.Duration(i)*time.Hour)))
		}

		patterns := DetectPatterns(txs, testRoot)
		assert.False(t, patterns.RapidSuccession)
	})

	t.Run("high frequency wallet", func(t *testing.T) {
		var txs []etherscan.Transaction
		for i := 0; i < 51; i++ {
			txs = append(txs, makeTx("0xaaa", testRoot, 0.5, base.Add(time.Duration(i)*time.Hour)))
		}

		patterns := DetectPatterns(txs, testRoot)
		assert.True(t, patterns.HighFrequencyWallet)
	})

	t.Run("mixing suspicion when inbound dominates", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx("0xaaa", testRoot, 1, base),
			makeTx("0xbbb", testRoot, 1, base.Add(time.Hour)),
			makeTx("0xccc", testRoot, 1, base.Add(2*time.Hour)),
			makeTx(testRoot, "0xddd", 1, base.Add(3*time.Hour)),
		}

		patterns := DetectPatterns(txs, testRoot)
		assert.True(t, patterns.MixingServiceSuspicion)
	})

	t.Run("consolidation pattern", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx("0xaaa", testRoot, 1, base),
			makeTx("0xbbb", testRoot, 1, base.Add(time.Hour)),
			makeTx(testRoot, "0xccc", 50, base.Add(2*time.Hour)),
		}

		patterns := DetectPatterns(txs, testRoot)
		assert.True(t, patterns.ConsolidationPattern)
	})

	t.Run("dust transactions collected", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx("0xaaa", testRoot, 0.005, base),
			makeTx("0xbbb", testRoot, 0.001, base.Add(time.Hour)),
			makeTx("0xccc", testRoot, 2, base.Add(2*time.Hour)),
		}

		patterns := DetectPatterns(txs, testRoot)
		assert.Len(t, patterns.DustTransactions, 2)
	})
}

func TestUnitCalculateRiskScore(t *testing.T) {
	t.Run("no patterns means zero", func(t *testing.T) {
		score, factors := CalculateRiskScore(Patterns{}, 10)
		assert.Zero(t, score)
		assert.Empty(t, factors)
	})

	t.Run("each pattern contributes a factor", func(t *testing.T) {
		patterns := Patterns{
			RapidSuccession:        true,
			MixingServiceSuspicion: true,
		}

		score, factors := CalculateRiskScore(patterns, 10)
		assert.Equal(t, 45, score)
		assert.Len(t, factors, 2)
	})

	t.Run("score is capped at 100", func(t *testing.T) {
		patterns := Patterns{
			RapidSuccession:        true,
			HighFrequencyWallet:    true,
			MixingServiceSuspicion: true,
			ConsolidationPattern:   true,
			LayeringPattern:        true,
			DustTransactions:       []float64{1, 2, 3, 4, 5, 6},
			RoundAmounts:           []float64{1, 2, 3, 4, 5},
		}

		score, _ := CalculateRiskScore(patterns, 10)
		assert.Equal(t, 100, score)
	})
}

func TestUnitCalculateConfidence(t *testing.T) {
	for _, tc := range []struct {
		name      string
		totalTxs  int
		senders   int
		receivers int
		patterns  Patterns
		expected  int
	}{
		{
			name:     "baseline",
			totalTxs: 5,
			expected: 50,
		},
		{
			name:      "large dataset with many parties",
			totalTxs:  150,
			senders:   20,
			receivers: 15,
			expected:  85,
		},
		{
			name:     "pattern bonus",
			totalTxs: 5,
			patterns: Patterns{RapidSuccession: true, LayeringPattern: true},
			expected: 56,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual := CalculateConfidence(tc.totalTxs, tc.senders, tc.receivers, tc.patterns)
			require.Equal(t, tc.expected, actual)
		})
	}
}
