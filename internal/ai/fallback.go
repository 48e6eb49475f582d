package ai

import (
	"fmt"
	"math"
	"strings"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
)

const unavailableNotice = "[Analysis temporarily unavailable. Please check API configuration.]"

// FallbackNarrative builds a template narrative when no AI provider is
// reachable.
func FallbackNarrative(summary *analysis.Summary) string {
	period := "N/A to N/A"
	if summary.StartDate != "" || summary.EndDate != "" {
		start, end := summary.StartDate, summary.EndDate
		if start == "" {
			start = "N/A"
		}
		if end == "" {
			end = "N/A"
		}
		period = start + " to " + end
	}

	flowType := "neutral"
	switch {
	case summary.NetFlow > 0:
		flowType = "accumulation"
	case summary.NetFlow < 0:
		flowType = "liquidation"
	}

	velocity := "low"
	switch total := summary.TotalVolumeIn + summary.TotalVolumeOut; {
	case total > 10000:
		velocity = "high"
	case total > 1000:
		velocity = "moderate"
	}

	factors := "No major risk factors detected"
	if len(summary.RiskFactors) > 0 {
		factors = strings.Join(summary.RiskFactors, ", ")
	}

	return fmt.Sprintf(
		"During the analysis period (%s), the target address exhibited %s transaction velocity "+
			"with %d inbound and %d outbound counterparties. Total inflow of %.2f ETH against outflow "+
			"of %.2f ETH resulted in a net %s of %.2f ETH. Risk Assessment: %s (%d/100). %s. "+
			"Transaction patterns suggest deliberate capital movement.",
		period,
		velocity,
		summary.UniqueSenders,
		summary.UniqueReceivers,
		summary.TotalVolumeIn,
		summary.TotalVolumeOut,
		flowType,
		math.Abs(summary.NetFlow),
		summary.RiskLevel(),
		summary.RiskScore,
		factors,
	)
}
