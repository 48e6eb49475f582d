package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

// LegalGenerator builds FIR-style documents bound to one investigation.
type LegalGenerator struct {
	CaseID       string
	Investigator string
	Department   string
}

func NewLegalGenerator(caseID, investigator, department string) *LegalGenerator {
	if investigator == "" {
		investigator = "Unknown Officer"
	}
	if department == "" {
		department = "Cybercrime Division"
	}

	return &LegalGenerator{
		CaseID:       caseID,
		Investigator: investigator,
		Department:   department,
	}
}

// FIR assembles a First Information Report for the analyzed address.
func (g *LegalGenerator) FIR(summary *analysis.Summary, narrative string, now time.Time) *LegalReport {
	if len(narrative) > narrativeLimit {
		narrative = narrative[:narrativeLimit] + "..."
	}

	patterns := activePatternNames(summary.Patterns)
	category := riskCategory(summary.RiskScore)
	date := now.Format("02-01-2006")

	return &LegalReport{
		FIRNumber:     "CYBER/" + g.CaseID,
		ReportDate:    date,
		ReportTime:    now.Format("15:04:05"),
		Investigator:  g.Investigator,
		Department:    g.Department,
		EvidenceType:  evidenceType,
		TargetAddress: truncate(summary.Address, 20),
		Findings: KeyFindings{
			TotalTransactions: summary.TotalTransactions,
			TotalReceived:     summary.TotalVolumeIn,
			TotalSent:         summary.TotalVolumeOut,
			NetFlow:           summary.NetFlow,
			RiskScore:         summary.RiskScore,
			ConfidenceLevel:   summary.ConfidenceScore,
			EntityType:        string(summary.EntityInfo.Type),
			PatternsDetected:  len(patterns),
		},
		Narrative:    narrative,
		Patterns:     patterns,
		RiskCategory: category,
		RiskScore:    summary.RiskScore,
		Assessment: fmt.Sprintf(
			"Based on the forensic analysis of the provided Ethereum address and its "+
				"transaction patterns, this entity has been classified as %s (Score: %d/100). "+
				"This assessment is based on %d suspicious patterns, %d transactions analyzed, "+
				"entity classification %s, %d source and %d destination addresses, and a %d%% "+
				"confidence level.",
			category, summary.RiskScore, len(patterns), summary.TotalTransactions,
			summary.EntityInfo.Type, len(summary.TopVictims), len(summary.TopSuspects),
			summary.ConfidenceScore),
		Sources:      flowEntries(summary.TopVictims, summary.AvgTransactionValue),
		Destinations: flowEntries(summary.TopSuspects, summary.AvgTransactionValue),
		Custody: []CustodyItem{
			{Item: "Primary Evidence", Description: "Ethereum Address " + truncate(summary.Address, 10), CollectedBy: g.Investigator, Date: date},
			{Item: "Data Source", Description: "Etherscan API (Public Blockchain Data)", CollectedBy: g.Investigator, Date: date},
			{Item: "Analysis Date", Description: "Blockchain Forensic Analysis", CollectedBy: g.Investigator, Date: date},
		},
		Verification: fmt.Sprintf(
			"Network: %s. Data Source: Etherscan API (public blockchain data). "+
				"Verification Method: Public blockchain explorer API. Data Timestamp: %s. "+
				"Analysis Tool: %s. The evidence presented in this report has been extracted "+
				"directly from the immutable blockchain using publicly available API endpoints. "+
				"All transactions are permanently recorded and cannot be altered without "+
				"consensus from the entire network.",
			summary.ChainName, now.Format(time.RFC3339), analysisTool),
		Certification: fmt.Sprintf(
			"I hereby certify that I have conducted a thorough forensic analysis of the "+
				"above-mentioned address and that the findings presented in this report are "+
				"accurate and complete to the best of my knowledge and belief. "+
				"Date: %s. Investigator: %s. Department: %s.",
			date, g.Investigator, g.Department),
	}
}

// Text renders the FIR as a printable plain-text document.
func (r *LegalReport) Text() string {
	var b strings.Builder

	b.WriteString("FIRST INFORMATION REPORT (FIR)\n")
	b.WriteString("Digital Forensics - Cryptocurrency Analysis\n\n")

	fmt.Fprintf(&b, "FIR Number:            %s\n", r.FIRNumber)
	fmt.Fprintf(&b, "Date of Report:        %s\n", r.ReportDate)
	fmt.Fprintf(&b, "Time of Report:        %s\n", r.ReportTime)
	fmt.Fprintf(&b, "Investigating Officer: %s\n", r.Investigator)
	fmt.Fprintf(&b, "Department:            %s\n", r.Department)
	fmt.Fprintf(&b, "Digital Evidence Type: %s\n", r.EvidenceType)
	fmt.Fprintf(&b, "Target Address:        %s\n\n", r.TargetAddress)

	b.WriteString("KEY FINDINGS AND ANALYSIS\n")
	fmt.Fprintf(&b, "  Total Transactions: %d\n", r.Findings.TotalTransactions)
	fmt.Fprintf(&b, "  Total ETH Received: %.4f\n", r.Findings.TotalReceived)
	fmt.Fprintf(&b, "  Total ETH Sent:     %.4f\n", r.Findings.TotalSent)
	fmt.Fprintf(&b, "  Net Flow:           %.4f ETH\n", r.Findings.NetFlow)
	fmt.Fprintf(&b, "  Risk Score:         %d/100\n", r.Findings.RiskScore)
	fmt.Fprintf(&b, "  Confidence Level:   %d%%\n", r.Findings.ConfidenceLevel)
	fmt.Fprintf(&b, "  Entity Type:        %s\n", r.Findings.EntityType)
	fmt.Fprintf(&b, "  Patterns Detected:  %d\n\n", r.Findings.PatternsDetected)

	b.WriteString("DETAILED FORENSIC ANALYSIS\n")
	fmt.Fprintf(&b, "%s\n\n", r.Narrative)

	b.WriteString("Detected Suspicious Patterns:\n")
	if len(r.Patterns) == 0 {
		b.WriteString("  No suspicious patterns detected.\n\n")
	} else {
		for _, pattern := range r.Patterns {
			fmt.Fprintf(&b, "  - %s\n", strings.ToUpper(pattern))
		}
		b.WriteString("\n")
	}

	b.WriteString("RISK ASSESSMENT\n")
	fmt.Fprintf(&b, "%s\n\n", r.Assessment)

	writeFlowTable(&b, "SOURCE ADDRESSES (VICTIMS)", r.Sources, "No incoming transactions detected.")
	writeFlowTable(&b, "DESTINATION ADDRESSES (SUSPECTS)", r.Destinations, "No outgoing transactions detected.")

	b.WriteString("EVIDENCE CHAIN OF CUSTODY\n")
	for _, item := range r.Custody {
		fmt.Fprintf(&b, "  %-18s %-45s %-20s %s\n", item.Item, item.Description, item.CollectedBy, item.Date)
	}
	b.WriteString("\n")

	b.WriteString("BLOCKCHAIN VERIFICATION DETAILS\n")
	fmt.Fprintf(&b, "%s\n\n", r.Verification)

	b.WriteString("INVESTIGATOR CERTIFICATION\n")
	fmt.Fprintf(&b, "%s\n", r.Certification)

	return b.String()
}

func activePatternNames(patterns analysis.Patterns) []string {
	var names []string
	if patterns.RapidSuccession {
		names = append(names, "rapid_succession")
	}
	if patterns.HighFrequencyWallet {
		names = append(names, "high_frequency")
	}
	if patterns.MixingServiceSuspicion {
		names = append(names, "mixing_service")
	}
	if patterns.ConsolidationPattern {
		names = append(names, "consolidation")
	}
	if patterns.LayeringPattern {
		names = append(names, "layering")
	}

	return names
}

// riskCategory bands the score for legal documents, which use a coarser
// three-level scale than the analysis summary.
func riskCategory(score int) string {
	switch {
	case score < 30:
		return "LOW RISK"
	case score < 70:
		return "MEDIUM RISK"
	default:
		return "HIGH RISK"
	}
}

// Recommendations derives investigative follow-ups from the scored summary.
func Recommendations(summary *analysis.Summary) []string {
	var out []string

	if summary.RiskScore > 70 {
		out = append(out, "PRIORITY: High-risk entity, recommend immediate further investigation")
	}
	if summary.Patterns.ConsolidationPattern {
		out = append(out, "Investigate fund consolidation patterns, may indicate mixing or layering")
	}
	if summary.Patterns.RapidSuccession {
		out = append(out, "Monitor rapid transaction succession, typical of automated laundering")
	}
	if summary.Patterns.HighFrequencyWallet {
		out = append(out, "High-frequency trading pattern detected, may require enhanced monitoring")
	}

	if len(out) == 0 {
		out = append(out,
			"Continue routine monitoring",
			"Re-assess if new patterns emerge",
		)
	}

	return out
}
