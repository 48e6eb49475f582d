package monitor

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

func makeTx(ts int64, from, to string, ethValue float64) etherscan.Transaction {
	return etherscan.Transaction{
		TimeStamp: strconv.FormatInt(ts, 10),
		From:      from,
		To:        to,
		Value:     strconv.FormatInt(int64(ethValue*1e6), 10) + "000000000000",
	}
}

func TestUnitDetectAnomalies(t *testing.T) {
	const root = "0xroot"

	t.Run("too few transactions stays quiet", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(1000, root, "0xa", 1),
			makeTx(1010, root, "0xb", 1),
		}

		assert.Empty(t, detectAnomalies(root, txs))
	})

	t.Run("rapid succession flagged", func(t *testing.T) {
		txs := make([]etherscan.Transaction, 0, 6)
		for i := int64(0); i < 6; i++ {
			txs = append(txs, makeTx(1000+i*10, root, "0xa", 1))
		}

		events := detectAnomalies(root, txs)
		require.Len(t, events, 1)
		assert.Equal(t, AlertUnusualFrequency, events[0].Type)
		assert.Equal(t, SeverityHigh, events[0].Severity)
	})

	t.Run("unusual amount flagged", func(t *testing.T) {
		// Nine 1 ETH transfers and one 20 ETH outlier: the outlier exceeds
		// five times the 2.9 ETH window average.
		txs := make([]etherscan.Transaction, 0, 10)
		for i := int64(0); i < 9; i++ {
			txs = append(txs, makeTx(1000+i*1000, root, "0xa", 1))
		}
		txs = append(txs, makeTx(10000, root, "0xa", 20))

		events := detectAnomalies(root, txs)
		require.Len(t, events, 1)
		assert.Equal(t, AlertUnusualAmount, events[0].Type)
		assert.Equal(t, SeverityMedium, events[0].Severity)
	})

	t.Run("steady activity produces no events", func(t *testing.T) {
		txs := []etherscan.Transaction{
			makeTx(1000, root, "0xa", 1),
			makeTx(2000, root, "0xa", 1.1),
			makeTx(3000, root, "0xa", 0.9),
			makeTx(4000, root, "0xa", 1),
			makeTx(5000, root, "0xa", 1.2),
		}

		assert.Empty(t, detectAnomalies(root, txs))
	})
}

func TestUnitCheckCounterparties(t *testing.T) {
	const root = "0xroot"
	service := &Service{}

	t.Run("first pass seeds without alerting", func(t *testing.T) {
		job := &Job{Address: root, AlertOnNewCounterparty: true}
		txs := []etherscan.Transaction{
			makeTx(1000, "0xAAA", root, 1),
			makeTx(1010, root, "0xBBB", 1),
		}

		event := service.checkCounterparties(job, txs)
		assert.Nil(t, event)
		assert.Contains(t, job.KnownCounterparties, "0xaaa")
		assert.Contains(t, job.KnownCounterparties, "0xbbb")
	})

	t.Run("new counterparty on later pass", func(t *testing.T) {
		job := &Job{Address: root, AlertOnNewCounterparty: true}
		job.storeKnownSet(map[string]struct{}{"0xaaa": {}})

		event := service.checkCounterparties(job, []etherscan.Transaction{
			makeTx(2000, "0xCCC", root, 1),
		})
		require.NotNil(t, event)
		assert.Equal(t, AlertNewCounterparty, event.Type)
		assert.Equal(t, "New counterparties detected: 1", event.Description)
		assert.Equal(t, "0xccc", event.Metadata["new_counterparties"])
	})

	t.Run("known counterparties stay silent", func(t *testing.T) {
		job := &Job{Address: root, AlertOnNewCounterparty: true}
		job.storeKnownSet(map[string]struct{}{"0xaaa": {}})

		event := service.checkCounterparties(job, []etherscan.Transaction{
			makeTx(2000, "0xAAA", root, 1),
		})
		assert.Nil(t, event)
	})
}

func TestUnitKnownSetRoundTrip(t *testing.T) {
	job := &Job{}
	job.storeKnownSet(map[string]struct{}{"0xaaa": {}, "0xbbb": {}})

	set := job.knownSet()
	require.Len(t, set, 2)
	assert.Contains(t, set, "0xaaa")
	assert.Contains(t, set, "0xbbb")

	assert.Empty(t, (&Job{}).knownSet())
}
