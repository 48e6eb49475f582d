package anomaly

import (
	"math"
	"sort"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const (
	minTransactions = 10
	// z-score beyond which a feature marks the transaction anomalous
	zThreshold      = 2.5
	suspiciousScore = 0.7
)

type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect scores every transaction against the wallet's own statistical
// profile and returns outliers, strongest first. Amount and gas price are
// standardized independently and the worst deviation wins.
func (d *Detector) Detect(txs []etherscan.Transaction) []Anomaly {
	if len(txs) < minTransactions {
		return nil
	}

	amounts := make([]float64, len(txs))
	gasPrices := make([]float64, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount().InexactFloat64()
		gasPrices[i] = tx.GasPriceWei().InexactFloat64()
	}

	amountMean, amountStd := meanStd(amounts)
	gasMean, gasStd := meanStd(gasPrices)

	amountP10 := percentile(amounts, 10)
	amountP90 := percentile(amounts, 90)
	gasP95 := percentile(gasPrices, 95)

	var anomalies []Anomaly
	for i, tx := range txs {
		amountZ := zScore(amounts[i], amountMean, amountStd)
		gasZ := zScore(gasPrices[i], gasMean, gasStd)

		worst := math.Max(math.Abs(amountZ), math.Abs(gasZ))
		if worst < zThreshold {
			continue
		}

		// squash the deviation into a 0-1 score
		score := 1 - 1/(1+worst/2)

		var reasons []string
		if amounts[i] > amountP90 {
			reasons = append(reasons, "unusual_amount_high")
		}
		if amounts[i] > 0 && amounts[i] < amountP10 {
			reasons = append(reasons, "unusual_amount_low")
		}
		if gasPrices[i] > gasP95 {
			reasons = append(reasons, "unusually_high_gas")
		}

		anomalies = append(anomalies, Anomaly{
			Hash:         tx.Hash,
			From:         tx.From,
			To:           tx.To,
			Amount:       amounts[i],
			Timestamp:    tx.Time().Unix(),
			AnomalyScore: score,
			Reasons:      reasons,
			IsSuspicious: score > suspiciousScore,
		})
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].AnomalyScore > anomalies[j].AnomalyScore
	})

	return anomalies
}

// BuildBaseline summarizes the wallet's normal activity profile.
func (d *Detector) BuildBaseline(txs []etherscan.Transaction) *Baseline {
	if len(txs) == 0 {
		return nil
	}

	var amounts []float64
	timestamps := make([]int64, 0, len(txs))
	hours := make(map[int]struct{})
	days := make(map[int]struct{})

	for _, tx := range txs {
		if val := tx.Amount().InexactFloat64(); val > 0 {
			amounts = append(amounts, val)
		}

		ts := tx.Time().Unix()
		timestamps = append(timestamps, ts)
		hours[int(ts%86400)/3600] = struct{}{}
		days[int(ts/86400)%7] = struct{}{}
	}

	baseline := &Baseline{
		ActiveHours: sortedInts(hours),
		ActiveDays:  sortedInts(days),
	}

	if len(amounts) > 0 {
		mean, std := meanStd(amounts)
		baseline.AvgAmount = mean
		baseline.StdAmount = std
		baseline.MedianAmount = percentile(amounts, 50)
		baseline.MaxAmount = maxOf(amounts)
		baseline.MinAmount = minOf(amounts)
	}

	if len(timestamps) > 1 {
		minTS, maxTS := timestamps[0], timestamps[0]
		for _, ts := range timestamps {
			if ts < minTS {
				minTS = ts
			}
			if ts > maxTS {
				maxTS = ts
			}
		}

		if spanDays := float64(maxTS-minTS) / 86400; spanDays > 0 {
			baseline.AvgFrequency = float64(len(txs)) / spanDays
		}
	}

	return baseline
}

func meanStd(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(vals))

	return mean, math.Sqrt(variance)
}

func zScore(val, mean, std float64) float64 {
	if std == 0 {
		return 0
	}

	return (val - mean) / std
}

func percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

func maxOf(vals []float64) float64 {
	max := vals[0]
	for _, v := range vals {
		if v > max {
			max = v
		}
	}

	return max
}

func minOf(vals []float64) float64 {
	min := vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
	}

	return min
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}
