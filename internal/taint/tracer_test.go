package taint

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const (
	testSource = "0x000000000000000000000000000000000000beef"
	testMixer  = "0x12d66f87a04a9e220743712ce6d9bb1b5616b8fc"
	testCEX    = "0x28c6c06298d514db089934071355e5743bf21d60"
)

func makeTx(from, to string, ethValue float64, ts time.Time) etherscan.Transaction {
	wei := int64(ethValue * 1e6)

	return etherscan.Transaction{
		Hash:      "0x" + strconv.FormatInt(ts.UnixNano(), 16),
		From:      from,
		To:        to,
		Value:     strconv.FormatInt(wei, 10) + "000000000000",
		TimeStamp: strconv.FormatInt(ts.Unix(), 10),
	}
}

func TestUnitTrace(t *testing.T) {
	base := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)

	t.Run("unknown source yields empty trace", func(t *testing.T) {
		tracer := NewTracer(nil)
		trace := tracer.Trace(testSource, 0)
		assert.Zero(t, trace.TotalPaths)
		assert.Equal(t, "LOW", trace.Risk.RiskLevel)
	})

	t.Run("mixer on the path raises risk", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testSource, testMixer, 10, base),
			makeTx(testMixer, "0xaaa", 9.8, base.Add(time.Hour)),
		}

		tracer := NewTracer(txs)
		trace := tracer.Trace(testSource, 5)

		require.Len(t, trace.MixerUsage, 1)
		assert.Equal(t, 1, trace.MixerUsage[0].Depth)
		assert.Greater(t, trace.AmountLostToMixing, 0.0)
		assert.GreaterOrEqual(t, trace.Risk.RiskScore, 30)
	})

	t.Run("exchange deposit is a final destination", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testSource, "0xaaa", 5, base),
			makeTx("0xaaa", testCEX, 5, base.Add(time.Hour)),
		}

		tracer := NewTracer(txs)
		trace := tracer.Trace(testSource, 5)

		require.Len(t, trace.CEXDeposits, 1)
		require.NotEmpty(t, trace.Paths)
		assert.Equal(t, testCEX, trace.Paths[len(trace.Paths)-1].TerminatedAt)
	})
}

func TestUnitMixerInteractions(t *testing.T) {
	base := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)

	txs := []etherscan.Transaction{
		makeTx(testSource, testMixer, 1, base),
		makeTx(testMixer, testSource, 0.98, base.Add(time.Hour)),
		makeTx(testSource, "0xaaa", 1, base.Add(2*time.Hour)),
	}

	tracer := NewTracer(txs)
	interactions := tracer.MixerInteractions(txs)

	require.Len(t, interactions, 2)
	assert.Equal(t, "mixer_deposit", interactions[0].Type)
	assert.Equal(t, "mixer_withdrawal", interactions[1].Type)
	assert.Equal(t, "CRITICAL", interactions[0].Risk)
}

func TestUnitBridgeInteractions(t *testing.T) {
	base := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)
	bridge := "0x4200000000000000000000000000000000000010"

	txs := []etherscan.Transaction{
		makeTx(testSource, bridge, 2, base),
	}

	tracer := NewTracer(txs)
	interactions := tracer.BridgeInteractions(txs)

	require.Len(t, interactions, 1)
	assert.Equal(t, "bridge_transfer", interactions[0].Type)
	assert.Equal(t, "HIGH", interactions[0].Risk)
}

func TestUnitAtomicSwapPatterns(t *testing.T) {
	base := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)

	t.Run("deposit and withdrawal in one window", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testSource, testCEX, 5, base),
			makeTx(testCEX, "0xaaa", 4.9, base.Add(2*time.Minute)),
		}

		patterns := NewTracer(txs).AtomicSwapPatterns(txs)
		require.Len(t, patterns, 1)
		assert.Equal(t, 1, patterns[0].Deposits)
		assert.Equal(t, 1, patterns[0].Withdrawals)
		assert.Equal(t, []string{testCEX}, patterns[0].Exchanges)
	})

	t.Run("deposit only is not a swap", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testSource, testCEX, 5, base),
			makeTx(testSource, testCEX, 3, base.Add(time.Minute)),
		}

		patterns := NewTracer(txs).AtomicSwapPatterns(txs)
		assert.Empty(t, patterns)
	})

	t.Run("windows more than five minutes apart stay separate", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testSource, testCEX, 5, base),
			makeTx(testCEX, "0xaaa", 4.9, base.Add(20*time.Minute)),
		}

		patterns := NewTracer(txs).AtomicSwapPatterns(txs)
		assert.Empty(t, patterns)
	})
}
