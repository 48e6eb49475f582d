package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

type stubProvider struct {
	name string
	text string
	err  error
}

func (p stubProvider) Name() string { return p.name }

func (p stubProvider) Generate(_ context.Context, _ string) (string, error) {
	return p.text, p.err
}

func makeSummary() *analysis.Summary {
	return &analysis.Summary{
		Address:           "0xabc",
		StartDate:         "2024-01-01",
		EndDate:           "2024-03-01",
		TotalTransactions: 42,
		TotalVolumeIn:     1500,
		TotalVolumeOut:    300,
		NetFlow:           1200,
		UniqueSenders:     12,
		UniqueReceivers:   4,
		RiskScore:         55,
		RiskFactors:       []string{"Rapid transaction succession"},
		TopSuspects: []analysis.Counterparty{
			{Address: "0x1111111111111111111111111111111111111111", Volume: 100.5},
		},
		Patterns: analysis.Patterns{RapidSuccession: true},
	}
}

func TestUnitComprehensive(t *testing.T) {
	t.Run("uses first answering provider", func(t *testing.T) {
		service := NewService(
			stubProvider{name: "gemini", err: errors.New("quota")},
			stubProvider{name: "openai", text: "generated text"},
		)

		insights := service.Comprehensive(context.Background(), makeSummary())
		assert.Equal(t, "generated text", insights.Narrative)
		assert.Equal(t, "generated text", insights.PatternAnalysis)
		assert.Equal(t, "generated text", insights.SuspectProfile)
		assert.Equal(t, "openai", insights.Provider)
	})

	t.Run("falls back to template when all providers fail", func(t *testing.T) {
		service := NewService(stubProvider{name: "gemini", err: errors.New("quota")})

		insights := service.Comprehensive(context.Background(), makeSummary())
		assert.Equal(t, "template", insights.Provider)
		assert.Contains(t, insights.Narrative, "2024-01-01 to 2024-03-01")
		assert.Equal(t, unavailableNotice, insights.PatternAnalysis)
		assert.Equal(t, unavailableNotice, insights.SuspectProfile)
	})

	t.Run("works without providers", func(t *testing.T) {
		service := NewService()

		insights := service.Comprehensive(context.Background(), makeSummary())
		require.NotEmpty(t, insights.Narrative)
		assert.Equal(t, "template", insights.Provider)
	})
}

func TestUnitFallbackNarrative(t *testing.T) {
	t.Run("accumulation with moderate velocity", func(t *testing.T) {
		text := FallbackNarrative(makeSummary())
		assert.Contains(t, text, "moderate transaction velocity")
		assert.Contains(t, text, "net accumulation of 1200.00 ETH")
		assert.Contains(t, text, "HIGH (55/100)")
		assert.Contains(t, text, "Rapid transaction succession")
	})

	t.Run("liquidation without dates", func(t *testing.T) {
		summary := makeSummary()
		summary.StartDate = ""
		summary.EndDate = ""
		summary.NetFlow = -10
		summary.TotalVolumeIn = 5
		summary.TotalVolumeOut = 15
		summary.RiskFactors = nil

		text := FallbackNarrative(summary)
		assert.Contains(t, text, "(N/A to N/A)")
		assert.Contains(t, text, "low transaction velocity")
		assert.Contains(t, text, "net liquidation of 10.00 ETH")
		assert.Contains(t, text, "No major risk factors detected")
	})
}

func TestUnitPrompts(t *testing.T) {
	summary := makeSummary()

	t.Run("narrative prompt carries transaction data", func(t *testing.T) {
		prompt := narrativePrompt(summary)
		assert.Contains(t, prompt, "Forensic Financial Analyst")
		assert.Contains(t, prompt, "Total Inflow: 1500.0000 ETH")
		assert.Contains(t, prompt, "Rapid Succession: true")
		assert.Contains(t, prompt, "RISK FACTORS: Rapid transaction succession")
	})

	t.Run("suspects prompt truncates addresses", func(t *testing.T) {
		prompt := suspectsPrompt(summary)
		assert.Contains(t, prompt, "0x111111111111111111...: 100.5000 ETH")
		assert.Contains(t, prompt, "Flow Type: Receiving funds")
	})

	t.Run("suspects prompt flags outbound flow", func(t *testing.T) {
		out := makeSummary()
		out.NetFlow = -1

		assert.Contains(t, suspectsPrompt(out), "Flow Type: Sending funds")
	})
}
