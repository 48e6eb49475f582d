package anomaly

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

func makeTx(ethValue float64, gasPriceWei int64, ts time.Time) etherscan.Transaction {
	wei := int64(ethValue * 1e6)

	return etherscan.Transaction{
		Hash:      fmt.Sprintf("0x%d", ts.UnixNano()),
		From:      "0xaaa",
		To:        "0xbbb",
		Value:     strconv.FormatInt(wei, 10) + "000000000000",
		GasPrice:  strconv.FormatInt(gasPriceWei, 10),
		TimeStamp: strconv.FormatInt(ts.Unix(), 10),
	}
}

func TestUnitDetect(t *testing.T) {
	detector := NewDetector()
	base := time.Date(2026, time.April, 7, 10, 0, 0, 0, time.UTC)

	t.Run("too few transactions", func(t *testing.T) {
		txs := []etherscan.Transaction{makeTx(1, 100, base)}
		assert.Nil(t, detector.Detect(txs))
	})

	t.Run("uniform activity has no outliers", func(t *testing.T) {
		var txs []etherscan.Transaction
		for i := 0; i < 20; i++ {
			txs = append(txs, makeTx(1, 100, base.Add(time.Duration(i)*time.Hour)))
		}

		assert.Empty(t, detector.Detect(txs))
	})

	t.Run("spike stands out", func(t *testing.T) {
		var txs []etherscan.Transaction
		for i := 0; i < 30; i++ {
			txs = append(txs, makeTx(1, 100, base.Add(time.Duration(i)*time.Hour)))
		}
		spike := makeTx(500, 100, base.Add(40*time.Hour))
		txs = append(txs, spike)

		anomalies := detector.Detect(txs)
		require.Len(t, anomalies, 1)
		assert.Equal(t, spike.Hash, anomalies[0].Hash)
		assert.Contains(t, anomalies[0].Reasons, "unusual_amount_high")
		assert.True(t, anomalies[0].IsSuspicious)
	})
}

func TestUnitBuildBaseline(t *testing.T) {
	detector := NewDetector()
	base := time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC) // Monday

	t.Run("empty set", func(t *testing.T) {
		assert.Nil(t, detector.BuildBaseline(nil))
	})

	t.Run("profile over two days", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(1, 100, base),
			makeTx(3, 100, base.Add(12*time.Hour)),
			makeTx(2, 100, base.Add(24*time.Hour)),
		}

		baseline := detector.BuildBaseline(txs)
		require.NotNil(t, baseline)
		assert.InDelta(t, 2.0, baseline.AvgAmount, 1e-9)
		assert.InDelta(t, 2.0, baseline.MedianAmount, 1e-9)
		assert.InDelta(t, 3.0, baseline.MaxAmount, 1e-9)
		assert.InDelta(t, 1.0, baseline.MinAmount, 1e-9)
		assert.InDelta(t, 3.0, baseline.AvgFrequency, 1e-9)
		assert.Equal(t, []int{0, 12}, baseline.ActiveHours)
	})
}
