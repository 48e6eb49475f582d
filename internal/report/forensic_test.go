package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/internal/ai"
	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

func makeSummary() *analysis.Summary {
	return &analysis.Summary{
		Address:             "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		ChainName:           "ethereum",
		StartDate:           "2024-01-01",
		EndDate:             "2024-06-30",
		TotalTransactions:   120,
		TotalVolumeIn:       500,
		TotalVolumeOut:      480,
		NetFlow:             20,
		UniqueSenders:       30,
		UniqueReceivers:     8,
		AvgTransactionValue: 4,
		RiskScore:           55,
		ConfidenceScore:     80,
		RiskFactors:         []string{"Rapid transaction succession", "High frequency activity"},
		EntityInfo:          analysis.EntityInfo{Type: analysis.EntityIndividual},
		TopVictims: []analysis.Counterparty{
			{Address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Volume: 100},
			{Address: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Volume: 12},
		},
		TopSuspects: []analysis.Counterparty{
			{Address: "0xcccccccccccccccccccccccccccccccccccccccc", Volume: 300},
		},
		CashOutPoints: []string{"0xdddd... sent 50.00 ETH to Binance"},
		Patterns: analysis.Patterns{
			RapidSuccession:     true,
			HighFrequencyWallet: true,
			DustTransactions:    []float64{0.001, 0.002},
		},
	}
}

func TestUnitBuildForensic(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	insights := &ai.Insights{Narrative: "Narrative text.", Provider: "template"}

	doc := BuildForensic(makeSummary(), insights, []string{"Funds routed through exchange"}, "Etherscan API", now)

	t.Run("summary section", func(t *testing.T) {
		assert.Equal(t, 120, doc.Summary.TotalTransactions)
		assert.Equal(t, "2024-01-01 to 2024-06-30", doc.Summary.AnalysisPeriod)
		assert.Equal(t, analysis.RiskHigh, doc.Risk.Level)
	})

	t.Run("pattern descriptions", func(t *testing.T) {
		require.Len(t, doc.Patterns, 3)
		assert.Contains(t, doc.Patterns[0], "Rapid succession")
		assert.Contains(t, doc.Patterns[1], "High frequency")
		assert.Contains(t, doc.Patterns[2], "2 dust transactions")
	})

	t.Run("large transfers flagged", func(t *testing.T) {
		require.Len(t, doc.Inbound, 2)
		assert.Equal(t, "Large Transfer", doc.Inbound[0].Status)
		assert.Equal(t, "Normal", doc.Inbound[1].Status)
		require.Len(t, doc.Outbound, 1)
		assert.Equal(t, "Large Transfer", doc.Outbound[0].Status)
	})

	t.Run("text rendering", func(t *testing.T) {
		text := doc.Text()
		assert.Contains(t, text, "OPENCHAIN IR - FORENSIC AUDIT REPORT")
		assert.Contains(t, text, "Risk Score:         55/100")
		assert.Contains(t, text, "CASH-OUT ALERTS")
		assert.Contains(t, text, "Funds routed through exchange")
		assert.Contains(t, text, "Narrative text.")
	})
}

func TestUnitDescribePatterns(t *testing.T) {
	t.Run("quiet wallet", func(t *testing.T) {
		out := describePatterns(analysis.Patterns{})
		require.Len(t, out, 1)
		assert.Equal(t, "No major patterns detected", out[0])
	})

	t.Run("round amounts appended after placeholder", func(t *testing.T) {
		out := describePatterns(analysis.Patterns{RoundAmounts: []float64{1, 5}})
		require.Len(t, out, 2)
		assert.Equal(t, "No major patterns detected", out[0])
		assert.Equal(t, "2 round-amount transactions detected", out[1])
	})
}

func TestUnitLegalReport(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	gen := NewLegalGenerator("2024042", "J. Doe", "Financial Crimes Unit")
	doc := gen.FIR(makeSummary(), "Generated narrative.", now)

	t.Run("header fields", func(t *testing.T) {
		assert.Equal(t, "CYBER/2024042", doc.FIRNumber)
		assert.Equal(t, "01-07-2024", doc.ReportDate)
		assert.Equal(t, "0x5aaeb6053f3e94c9b9...", doc.TargetAddress)
	})

	t.Run("findings table", func(t *testing.T) {
		assert.Equal(t, 120, doc.Findings.TotalTransactions)
		assert.Equal(t, 80, doc.Findings.ConfidenceLevel)
		assert.Equal(t, "Individual", doc.Findings.EntityType)
		assert.Equal(t, 2, doc.Findings.PatternsDetected)
	})

	t.Run("risk category bands", func(t *testing.T) {
		assert.Equal(t, "MEDIUM RISK", doc.RiskCategory)
		assert.Equal(t, "LOW RISK", riskCategory(10))
		assert.Equal(t, "HIGH RISK", riskCategory(85))
	})

	t.Run("defaults applied", func(t *testing.T) {
		fallback := NewLegalGenerator("1", "", "")
		assert.Equal(t, "Unknown Officer", fallback.Investigator)
		assert.Equal(t, "Cybercrime Division", fallback.Department)
	})

	t.Run("text rendering", func(t *testing.T) {
		text := doc.Text()
		assert.Contains(t, text, "FIRST INFORMATION REPORT (FIR)")
		assert.Contains(t, text, "RAPID_SUCCESSION")
		assert.Contains(t, text, "EVIDENCE CHAIN OF CUSTODY")
		assert.Contains(t, text, "Investigator: J. Doe")
	})
}

func TestUnitRecommendations(t *testing.T) {
	t.Run("pattern driven", func(t *testing.T) {
		recs := Recommendations(makeSummary())
		require.Len(t, recs, 2)
		assert.Contains(t, recs[0], "rapid transaction succession")
		assert.Contains(t, recs[1], "High-frequency")
	})

	t.Run("routine when clean", func(t *testing.T) {
		recs := Recommendations(&analysis.Summary{})
		require.Len(t, recs, 2)
		assert.Equal(t, "Continue routine monitoring", recs[0])
	})
}
