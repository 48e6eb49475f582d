package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
	"github.com/openchain-labs/openchain-ir/internal/threat"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

func TestUnitParseCSV(t *testing.T) {
	t.Run("standard columns", func(t *testing.T) {
		body := "address,tag,notes\n0xaaa,suspect,primary wallet\n0xbbb,victim,\n"

		entries, err := ParseCSV(strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "0xaaa", entries[0].Address)
		assert.Equal(t, "suspect", entries[0].Tag)
		assert.Equal(t, "primary wallet", entries[0].Notes)
	})

	t.Run("alternate address column", func(t *testing.T) {
		body := "Addr\n0xccc\n"

		entries, err := ParseCSV(strings.NewReader(body))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "0xccc", entries[0].Address)
	})

	t.Run("blank rows skipped", func(t *testing.T) {
		body := "address\n0xaaa\n\n0xbbb\n"

		entries, err := ParseCSV(strings.NewReader(body))
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("missing address column", func(t *testing.T) {
		body := "wallet\n0xaaa\n"

		_, err := ParseCSV(strings.NewReader(body))
		require.Error(t, err)
	})
}

func TestUnitWriteCSV(t *testing.T) {
	results := []Result{
		{
			Address:           "0xaaa",
			Tag:               "suspect",
			Status:            "ANALYZED",
			RiskScore:         45,
			ConfidenceScore:   70,
			EntityType:        "Unknown",
			TotalTransactions: 12,
			TotalReceived:     1.5,
			TotalSent:         0.25,
			PatternsDetected:  []string{"Rapid succession of transactions"},
		},
		{Address: "0xbbb", Status: "FAILED", Error: "fetch transactions: boom"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Risk Score")
	assert.Contains(t, lines[1], "0xaaa,suspect,45,70%,Unknown,12,1.5000,0.2500,1,false,ANALYZED")
	assert.Contains(t, lines[2], "FAILED")
}

type fakeAnalyzer struct {
	err error
}

func (f fakeAnalyzer) Analyze(_ context.Context, _ analysis.Request) (*analysis.Result, error) {
	if f.err != nil {
		return nil, f.err
	}

	return &analysis.Result{Summary: &analysis.Summary{TotalTransactions: 3, RiskScore: 10}}, nil
}

type fakeChecker struct {
	flagged map[string][]string
}

func (f fakeChecker) Check(address string) threat.CheckResult {
	sources, ok := f.flagged[address]
	if !ok {
		return threat.CheckResult{Severity: "none"}
	}

	return threat.CheckResult{IsFlagged: true, ThreatSources: sources, Severity: "high"}
}

func TestUnitAnalyzeOne(t *testing.T) {
	t.Run("flagged address", func(t *testing.T) {
		service := NewService(nil, fakeAnalyzer{}, fakeChecker{
			flagged: map[string][]string{"0xbad": {"ofac"}},
		}, 1)

		result := service.analyzeOne(context.Background(), etherscan.ChainEthereum, Entry{Address: "0xbad"})
		assert.Equal(t, "ANALYZED", result.Status)
		assert.True(t, result.ThreatFlagged)
		assert.Equal(t, []string{"ofac"}, result.ThreatSources)
	})

	t.Run("clean address", func(t *testing.T) {
		service := NewService(nil, fakeAnalyzer{}, fakeChecker{}, 1)

		result := service.analyzeOne(context.Background(), etherscan.ChainEthereum, Entry{Address: "0xgood"})
		assert.Equal(t, "ANALYZED", result.Status)
		assert.False(t, result.ThreatFlagged)
	})

	t.Run("analysis failure reported per address", func(t *testing.T) {
		service := NewService(nil, fakeAnalyzer{err: errors.New("boom")}, nil, 1)

		result := service.analyzeOne(context.Background(), etherscan.ChainEthereum, Entry{Address: "0xaaa"})
		assert.Equal(t, "FAILED", result.Status)
		assert.Contains(t, result.Error, "boom")
	})
}

func TestUnitFinalStatus(t *testing.T) {
	assert.Equal(t, JobFinished, finalStatus(3, 0))
	assert.Equal(t, JobFinished, finalStatus(2, 1))
	assert.Equal(t, JobFailed, finalStatus(0, 4))
	assert.Equal(t, JobFinished, finalStatus(0, 0))
}
