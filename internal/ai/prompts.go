package ai

import (
	"fmt"
	"strings"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

func narrativePrompt(summary *analysis.Summary) string {
	patterns := summary.Patterns

	return fmt.Sprintf(`ROLE: Forensic Financial Analyst
TASK: Analyze Ethereum transaction patterns for money laundering indicators and suspicious activity.

TRANSACTION DATA:
- Total Inflow: %.4f ETH
- Total Outflow: %.4f ETH
- Net Flow: %.4f ETH
- Transactions: %d
- Unique Sources: %d
- Unique Destinations: %d
- Avg Transaction: %.4f ETH
- Max Transaction: %.4f ETH

DETECTED PATTERNS:
- Rapid Succession: %t
- Round Amounts: %d detected
- Dust Transactions: %d detected
- High Frequency Wallet: %t
- Mixing Service Behavior: %t
- Consolidation Pattern: %t
- Layering Pattern: %t

RISK FACTORS: %s

INSTRUCTIONS:
- Provide a factual forensic narrative (100-150 words)
- Identify if patterns suggest money laundering techniques (mixing, structuring, layering)
- Assess the risk level and activity type
- Do NOT identify specific individuals
- Use professional AML/CFT terminology
- Keep analysis objective and evidence-based`,
		summary.TotalVolumeIn,
		summary.TotalVolumeOut,
		summary.NetFlow,
		summary.TotalTransactions,
		summary.UniqueSenders,
		summary.UniqueReceivers,
		summary.AvgTransactionValue,
		summary.MaxTransactionValue,
		patterns.RapidSuccession,
		len(patterns.RoundAmounts),
		len(patterns.DustTransactions),
		patterns.HighFrequencyWallet,
		patterns.MixingServiceSuspicion,
		patterns.ConsolidationPattern,
		patterns.LayeringPattern,
		riskFactorsLine(summary.RiskFactors),
	)
}

func patternPrompt(summary *analysis.Summary) string {
	return fmt.Sprintf(`ROLE: Blockchain Forensics Expert
TASK: Analyze transaction patterns for AML concerns.

Detected Patterns: %d of the tracked behaviors fired.
Risk Score: %d/100
Risk Factors: %s

Provide a structured analysis:
1. Pattern Type (if any): Describe the type of suspicious activity (mixing, structuring, layering, etc.)
2. AML Concern Level: LOW/MEDIUM/HIGH/CRITICAL
3. Justification: 2-3 sentences explaining why
4. Recommended Action: What investigation step is next

Keep it concise and professional.`,
		summary.Patterns.ActiveCount(),
		summary.RiskScore,
		riskFactorsLine(summary.RiskFactors),
	)
}

func suspectsPrompt(summary *analysis.Summary) string {
	suspects := summary.TopSuspects
	if len(suspects) > 5 {
		suspects = suspects[:5]
	}

	lines := make([]string, 0, len(suspects))
	for _, suspect := range suspects {
		addr := suspect.Address
		if len(addr) > 20 {
			addr = addr[:20] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s: %.4f ETH", addr, suspect.Volume))
	}

	flowType := "Receiving funds"
	if summary.NetFlow < 0 {
		flowType = "Sending funds"
	}

	return fmt.Sprintf(`ROLE: Financial Investigator
TASK: Profile top destination addresses based on transaction patterns.

Top Suspect Destinations (by volume):
%s

Transaction Pattern: %d transactions
Flow Type: %s

Provide brief analysis of each top destination address:
- Is it likely an exchange, mixing service, or individual wallet?
- Any red flags?
- Recommended tagging or monitoring

Be brief (2-3 sentences per address).`,
		strings.Join(lines, "\n"),
		summary.TotalTransactions,
		flowType,
	)
}

func riskFactorsLine(factors []string) string {
	if len(factors) == 0 {
		return "None detected"
	}

	return strings.Join(factors, ", ")
}
