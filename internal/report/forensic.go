package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/openchain-labs/openchain-ir/internal/ai"
	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

// BuildForensic assembles the audit report for one analysis, combining the
// computed summary, case findings and the AI narrative.
func BuildForensic(summary *analysis.Summary, insights *ai.Insights, findings []string, source string, now time.Time) *ForensicReport {
	period := "N/A to N/A"
	if summary.StartDate != "" || summary.EndDate != "" {
		period = orNA(summary.StartDate) + " to " + orNA(summary.EndDate)
	}

	return &ForensicReport{
		Title:       "OPENCHAIN IR - FORENSIC AUDIT REPORT",
		GeneratedAt: now,
		Source:      source,
		Summary: SummarySection{
			Address:           summary.Address,
			ChainName:         summary.ChainName,
			TotalTransactions: summary.TotalTransactions,
			TotalInflow:       summary.TotalVolumeIn,
			TotalOutflow:      summary.TotalVolumeOut,
			NetFlow:           summary.NetFlow,
			UniqueSenders:     summary.UniqueSenders,
			UniqueReceivers:   summary.UniqueReceivers,
			AvgTransaction:    summary.AvgTransactionValue,
			AnalysisPeriod:    period,
		},
		Patterns:      describePatterns(summary.Patterns),
		Risk:          RiskSection{Level: summary.RiskLevel(), Score: summary.RiskScore, Factors: summary.RiskFactors},
		Inbound:       flowEntries(summary.TopVictims, summary.AvgTransactionValue),
		Outbound:      flowEntries(summary.TopSuspects, summary.AvgTransactionValue),
		CashOutAlerts: summary.CashOutPoints,
		Findings:      findings,
		Narrative:     insights,
	}
}

// Text renders the report as plain text with the same section order as the
// JSON form.
func (r *ForensicReport) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&b, "  Total Transactions: %d\n", r.Summary.TotalTransactions)
	fmt.Fprintf(&b, "  Total Inflow:       %.4f ETH\n", r.Summary.TotalInflow)
	fmt.Fprintf(&b, "  Total Outflow:      %.4f ETH\n", r.Summary.TotalOutflow)
	fmt.Fprintf(&b, "  Net Flow:           %.4f ETH\n", r.Summary.NetFlow)
	fmt.Fprintf(&b, "  Unique Senders:     %d\n", r.Summary.UniqueSenders)
	fmt.Fprintf(&b, "  Unique Receivers:   %d\n", r.Summary.UniqueReceivers)
	fmt.Fprintf(&b, "  Avg Transaction:    %.4f ETH\n", r.Summary.AvgTransaction)
	fmt.Fprintf(&b, "  Risk Score:         %d/100\n", r.Risk.Score)
	fmt.Fprintf(&b, "  Analysis Period:    %s\n\n", r.Summary.AnalysisPeriod)

	b.WriteString("PATTERN ANALYSIS\n")
	for _, pattern := range r.Patterns {
		fmt.Fprintf(&b, "  - %s\n", pattern)
	}
	b.WriteString("\n")

	b.WriteString("RISK ASSESSMENT\n")
	fmt.Fprintf(&b, "  Overall Risk Level: %s (%d/100)\n", r.Risk.Level, r.Risk.Score)
	for _, factor := range r.Risk.Factors {
		fmt.Fprintf(&b, "  - %s\n", factor)
	}
	b.WriteString("\n")

	writeFlowTable(&b, "INBOUND ANALYSIS (VICTIMS)", r.Inbound, "No inbound transactions detected.")
	writeFlowTable(&b, "OUTBOUND ANALYSIS (SUSPECTS)", r.Outbound, "No outbound transactions detected.")

	if len(r.CashOutAlerts) > 0 {
		b.WriteString("CASH-OUT ALERTS\n")
		for _, alert := range r.CashOutAlerts {
			fmt.Fprintf(&b, "  - %s\n", alert)
		}
		b.WriteString("\n")
	}

	if len(r.Findings) > 0 {
		b.WriteString("INVESTIGATION FINDINGS\n")
		for _, finding := range r.Findings {
			fmt.Fprintf(&b, "  - %s\n", finding)
		}
		b.WriteString("\n")
	}

	if r.Narrative != nil {
		b.WriteString("AI INVESTIGATIVE NARRATIVE\n")
		fmt.Fprintf(&b, "%s\n", r.Narrative.Narrative)
		if r.Narrative.PatternAnalysis != "" {
			fmt.Fprintf(&b, "\nPattern Analysis:\n%s\n", r.Narrative.PatternAnalysis)
		}
		if r.Narrative.SuspectProfile != "" {
			fmt.Fprintf(&b, "\nSuspect Profile:\n%s\n", r.Narrative.SuspectProfile)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Report generated on %s | Source: %s\n",
		r.GeneratedAt.Format("2006-01-02 15:04:05"), r.Source)

	return b.String()
}

func describePatterns(patterns analysis.Patterns) []string {
	var out []string

	if patterns.RapidSuccession {
		out = append(out, "Rapid succession of transactions (within 1 minute)")
	}
	if patterns.HighFrequencyWallet {
		out = append(out, "High frequency transaction wallet (>50 transactions)")
	}
	if patterns.MixingServiceSuspicion {
		out = append(out, "Possible mixing service behavior (many inputs, few outputs)")
	}
	if patterns.ConsolidationPattern {
		out = append(out, "Consolidation pattern detected (many small inputs, large outputs)")
	}
	if patterns.LayeringPattern {
		out = append(out, "Layering pattern detected (potential AML obfuscation)")
	}

	if len(out) == 0 {
		out = append(out, "No major patterns detected")
	}

	if n := len(patterns.DustTransactions); n > 0 {
		out = append(out, fmt.Sprintf("%d dust transactions (very small amounts)", n))
	}
	if n := len(patterns.RoundAmounts); n > 0 {
		out = append(out, fmt.Sprintf("%d round-amount transactions detected", n))
	}

	return out
}

func flowEntries(parties []analysis.Counterparty, avgValue float64) []FlowEntry {
	entries := make([]FlowEntry, 0, len(parties))
	for _, party := range parties {
		status := "Normal"
		if avgValue > 0 && party.Volume > avgValue*largeTransferMultiple {
			status = "Large Transfer"
		}

		entries = append(entries, FlowEntry{
			Address: party.Address,
			Amount:  party.Volume,
			Status:  status,
		})
	}

	return entries
}

func writeFlowTable(b *strings.Builder, title string, entries []FlowEntry, empty string) {
	b.WriteString(title + "\n")
	if len(entries) == 0 {
		fmt.Fprintf(b, "  %s\n\n", empty)

		return
	}

	for _, entry := range entries {
		fmt.Fprintf(b, "  %-20s %12.4f ETH  %s\n", truncate(entry.Address, 16), entry.Amount, entry.Status)
	}
	b.WriteString("\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}

	return s
}
