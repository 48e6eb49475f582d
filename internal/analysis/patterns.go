package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const (
	rapidGap          = 60.0 // seconds between txs considered rapid
	rapidRatio        = 0.3
	dustThreshold     = 0.01
	highFrequencyTxs  = 50
	layeringTxs       = 20
	consolidationMult = 10
)

// DetectPatterns runs the suspicious-behavior checks over a transaction set.
func DetectPatterns(txs []etherscan.Transaction, rootAddress string) Patterns {
	var patterns Patterns
	if len(txs) == 0 {
		return patterns
	}

	root := strings.ToLower(rootAddress)

	timestamps := make([]float64, 0, len(txs))
	for _, tx := range txs {
		timestamps = append(timestamps, float64(tx.Time().Unix()))
	}
	sort.Float64s(timestamps)

	if len(timestamps) > 2 {
		rapid := 0
		for i := 1; i < len(timestamps); i++ {
			diff := timestamps[i] - timestamps[i-1]
			if diff > 0 && diff < rapidGap {
				rapid++
			}
		}
		if float64(rapid) > float64(len(timestamps)-1)*rapidRatio {
			patterns.RapidSuccession = true
		}
	}

	var (
		incoming, outgoing int
		inputAmounts       []float64
		outputAmounts      []float64
	)

	for _, tx := range txs {
		val := tx.Amount().InexactFloat64()

		if val > 0 && val == math.Trunc(val) {
			patterns.RoundAmounts = append(patterns.RoundAmounts, val)
		}
		if val > 0 && val < dustThreshold {
			patterns.DustTransactions = append(patterns.DustTransactions, roundTo(val, 6))
		}

		switch {
		case strings.ToLower(tx.To) == root:
			incoming++
			inputAmounts = append(inputAmounts, val)
		case strings.ToLower(tx.From) == root:
			outgoing++
			outputAmounts = append(outputAmounts, val)
		}
	}

	if len(txs) > highFrequencyTxs {
		patterns.HighFrequencyWallet = true
	}

	if incoming > outgoing*2 {
		patterns.MixingServiceSuspicion = true
	}

	if len(inputAmounts) > 0 && len(outputAmounts) > 0 {
		avgInput := mean(inputAmounts)
		maxOutput := maxOf(outputAmounts)
		if avgInput > 0 && maxOutput > avgInput*consolidationMult {
			patterns.ConsolidationPattern = true
		}
	}

	if len(txs) > layeringTxs {
		senders := make(map[string]struct{})
		receivers := make(map[string]struct{})
		for _, tx := range txs {
			senders[strings.ToLower(tx.From)] = struct{}{}
			receivers[strings.ToLower(tx.To)] = struct{}{}
		}
		if len(senders) > len(receivers) {
			patterns.LayeringPattern = true
		}
	}

	return patterns
}

// CalculateRiskScore converts detected patterns into a 0-100 score with the
// factors that contributed.
func CalculateRiskScore(patterns Patterns, totalTxs int) (int, []string) {
	score := 0
	var factors []string

	if patterns.RapidSuccession {
		score += 20
		factors = append(factors, "Rapid succession of transactions")
	}
	if patterns.HighFrequencyWallet {
		score += 15
		factors = append(factors, "High frequency transaction wallet")
	}
	if patterns.MixingServiceSuspicion {
		score += 25
		factors = append(factors, "Possible mixing service behavior")
	}
	if patterns.ConsolidationPattern {
		score += 20
		factors = append(factors, "Consolidation pattern detected")
	}
	if patterns.LayeringPattern {
		score += 18
		factors = append(factors, "Layering pattern detected (AML concern)")
	}
	if len(patterns.DustTransactions) > 5 {
		score += 15
		factors = append(factors, "Multiple dust transactions (potential obfuscation)")
	}
	if totalTxs > 0 && float64(len(patterns.RoundAmounts)) > float64(totalTxs)*0.3 {
		score += 10
		factors = append(factors, "High proportion of round amount transactions")
	}

	if score > 100 {
		score = 100
	}

	return score, factors
}

// CalculateConfidence estimates how reliable the assessment is: more data and
// more counterparties raise it, each fired pattern adds a little.
func CalculateConfidence(totalTxs, uniqueSenders, uniqueReceivers int, patterns Patterns) int {
	confidence := 50

	switch {
	case totalTxs > 100:
		confidence += 20
	case totalTxs > 50:
		confidence += 10
	}

	uniqueParties := uniqueSenders + uniqueReceivers
	switch {
	case uniqueParties > 30:
		confidence += 15
	case uniqueParties > 15:
		confidence += 8
	}

	patternBonus := patterns.ActiveCount() * 3
	if patternBonus > 20 {
		patternBonus = 20
	}
	confidence += patternBonus

	if confidence > 100 {
		confidence = 100
	}

	return confidence
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range vals {
		sum += v
	}

	return sum / float64(len(vals))
}

func maxOf(vals []float64) float64 {
	max := 0.0
	for _, v := range vals {
		if v > max {
			max = v
		}
	}

	return max
}

func roundTo(val float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(val*pow) / pow
}
