package cluster

import (
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
		From:      from,
		To:        to,
		Value:     strconv.FormatInt(wei, 10) + "000000000000",
		TimeStamp: strconv.FormatInt(ts.Unix(), 10),
	}
}

func TestUnitDetect(t *testing.T) {
	service := NewService()
	base := time.Date(2026, time.March, 3, 8, 0, 0, 0, time.UTC)

	t.Run("dust attack recipients", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testRoot, "0xaaa", 0.001, base),
			makeTx(testRoot, "0xbbb", 0.002, base.Add(time.Hour)),
			makeTx(testRoot, "0xccc", 5, base.Add(2*time.Hour)),
		}

		clusters := service.Detect(txs, testRoot)
		require.Len(t, clusters.DustAttacks, 2)
		assert.True(t, clusters.DustAttacks[0].IsSuspicious)
	})

	t.Run("circular flow back to origin", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testRoot, "0xaaa", 1, base),
			makeTx("0xaaa", "0xbbb", 1, base.Add(time.Hour)),
			makeTx("0xbbb", testRoot, 1, base.Add(2*time.Hour)),
		}

		clusters := service.Detect(txs, testRoot)
		require.NotEmpty(t, clusters.CircularPatterns)
		path := clusters.CircularPatterns[0].Path
		assert.Equal(t, testRoot, path[0])
		assert.Equal(t, testRoot, path[len(path)-1])
	})

	t.Run("timing cluster needs five close transactions", func(t *testing.T) {
		var txs []etherscan.Transaction
		for i := 0; i < 6; i++ {
			txs = append(txs, makeTx("0xaaa", testRoot, 1, base.Add(time.Duration(i)*time.Minute)))
		}
		txs = append(txs, makeTx("0xaaa", testRoot, 1, base.Add(10*time.Hour)))

		clusters := service.Detect(txs, testRoot)
		require.Len(t, clusters.TimingClusters, 1)
		assert.Equal(t, 6, clusters.TimingClusters[0].ClusterSize)
	})

	t.Run("amount splitting across recipients", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(testRoot, "0xaaa", 0.5, base),
			makeTx(testRoot, "0xbbb", 0.5, base.Add(time.Hour)),
			makeTx(testRoot, "0xccc", 0.5, base.Add(2*time.Hour)),
		}

		clusters := service.Detect(txs, testRoot)
		require.Len(t, clusters.AmountClusters, 1)
		assert.Equal(t, 3, clusters.AmountClusters[0].RecipientCount)
		assert.InDelta(t, 0.5, clusters.AmountClusters[0].Amount, 1e-9)
	})

	t.Run("empty set", func(t *testing.T) {
		clusters := service.Detect(nil, testRoot)
		assert.Empty(t, clusters.SuspiciousCounterparties)
		assert.Empty(t, clusters.TimingClusters)
	})
}
