package taint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const (
	defaultMaxDepth = 10
	mixingFeeRate   = 0.02
)

// Tracer follows value flow through the transaction graph looking for
// laundering infrastructure on the way.
type Tracer struct {
	edges map[string]map[string]float64
}

func NewTracer(txs []etherscan.Transaction) *Tracer {
	edges := make(map[string]map[string]float64)
	for _, tx := range txs {
		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)
		if from == "" || to == "" {
			continue
		}

		if edges[from] == nil {
			edges[from] = make(map[string]float64)
		}
		edges[from][to] += tx.Amount().InexactFloat64()
	}

	return &Tracer{edges: edges}
}

// Trace runs a breadth-first walk from the source, recording every complete
// path and every known mixer, bridge or exchange it crosses. maxDepth <= 0
// uses the default.
func (t *Tracer) Trace(sourceAddress string, maxDepth int) *Trace {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	source := strings.ToLower(sourceAddress)
	trace := &Trace{Source: source}

	if _, ok := t.edges[source]; !ok {
		trace.Risk = assessRisk(trace)

		return trace
	}

	type state struct {
		current string
		path    []string
		depth   int
		amount  float64
	}

	queue := []state{{current: source, path: []string{source}, depth: 0}}
	seen := map[string]struct{}{source: {}}

	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]

		if st.depth >= maxDepth {
			trace.Paths = append(trace.Paths, Path{
				Hops:         st.path,
				Depth:        len(st.path),
				FinalAmount:  st.amount,
				TerminatedAt: st.path[len(st.path)-1],
			})

			continue
		}

		switch {
		case isMixer(st.current):
			trace.MixerUsage = append(trace.MixerUsage, Touchpoint{
				Address: st.current, Kind: "mixer", Depth: st.depth, Amount: st.amount,
			})
			trace.AmountLostToMixing += st.amount * mixingFeeRate
		case isBridge(st.current):
			trace.BridgeUsage = append(trace.BridgeUsage, Touchpoint{
				Address: st.current, Kind: "bridge", Depth: st.depth, Amount: st.amount,
			})
		case isCEX(st.current):
			trace.CEXDeposits = append(trace.CEXDeposits, Touchpoint{
				Address: st.current, Kind: "cex", Depth: st.depth, Amount: st.amount,
			})
		}

		successors := t.successors(st.current)
		if len(successors) == 0 && st.depth > 0 {
			trace.Paths = append(trace.Paths, Path{
				Hops:         st.path,
				Depth:        len(st.path),
				FinalAmount:  st.amount,
				TerminatedAt: st.current,
			})

			continue
		}

		for _, next := range successors {
			if contains(st.path, next) {
				continue
			}

			path := append(append([]string{}, st.path...), next)
			key := strings.Join(path, ">")
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			queue = append(queue, state{
				current: next,
				path:    path,
				depth:   st.depth + 1,
				amount:  st.amount + t.edges[st.current][next],
			})
		}
	}

	trace.TotalPaths = len(trace.Paths)
	for _, p := range trace.Paths {
		if p.Depth > trace.MaxDepth {
			trace.MaxDepth = p.Depth
		}
		trace.TotalAmountTraced += p.FinalAmount
	}

	trace.Risk = assessRisk(trace)
	trace.Recommendations = recommendations(trace)

	return trace
}

// MixerInteractions flags direct transactions with known mixing services.
func (t *Tracer) MixerInteractions(txs []etherscan.Transaction) []Interaction {
	var interactions []Interaction
	for _, tx := range txs {
		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)

		if isMixer(to) {
			interactions = append(interactions, Interaction{
				Type: "mixer_deposit", Address: to, TxHash: tx.Hash,
				Amount: tx.Value, Timestamp: tx.TimeStamp, Risk: "CRITICAL",
			})
		}
		if isMixer(from) {
			interactions = append(interactions, Interaction{
				Type: "mixer_withdrawal", Address: from, TxHash: tx.Hash,
				Amount: tx.Value, Timestamp: tx.TimeStamp, Risk: "CRITICAL",
			})
		}
	}

	return interactions
}

// BridgeInteractions flags direct transactions with known bridges.
func (t *Tracer) BridgeInteractions(txs []etherscan.Transaction) []Interaction {
	var interactions []Interaction
	for _, tx := range txs {
		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)

		if isBridge(to) {
			interactions = append(interactions, Interaction{
				Type: "bridge_transfer", Address: to, TxHash: tx.Hash,
				Amount: tx.Value, Timestamp: tx.TimeStamp, Risk: "HIGH",
			})
		}
		if isBridge(from) {
			interactions = append(interactions, Interaction{
				Type: "bridge_receipt", Address: from, TxHash: tx.Hash,
				Amount: tx.Value, Timestamp: tx.TimeStamp, Risk: "MEDIUM",
			})
		}
	}

	return interactions
}

func (t *Tracer) successors(address string) []string {
	out := make([]string, 0, len(t.edges[address]))
	for addr := range t.edges[address] {
		out = append(out, addr)
	}
	sort.Strings(out)

	return out
}

func assessRisk(trace *Trace) RiskAssessment {
	score := 0
	var factors []string

	if n := len(trace.MixerUsage); n > 0 {
		score += 30
		factors = append(factors, fmt.Sprintf("Funds passed through %d mixer(s)", n))
	}
	if n := len(trace.BridgeUsage); n > 0 {
		score += 15
		factors = append(factors, fmt.Sprintf("Cross-chain bridge activity detected (%d)", n))
	}
	if n := len(trace.CEXDeposits); n > 0 {
		// exchange deposits make funds traceable through subpoena
		score -= 10
		factors = append(factors, fmt.Sprintf("Deposited to %d known exchange(s)", n))
	}
	if trace.MaxDepth > 5 {
		score += 15
		factors = append(factors, "Deep chain of transfers (obfuscation attempt)")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := "LOW"
	switch {
	case score >= 80:
		level = "CRITICAL"
	case score >= 60:
		level = "HIGH"
	case score >= 40:
		level = "MEDIUM"
	}

	return RiskAssessment{RiskScore: score, RiskLevel: level, RiskFactors: factors}
}

func recommendations(trace *Trace) []string {
	var recs []string

	if len(trace.MixerUsage) > 0 {
		recs = append(recs, "Funds passed through mixing service, identity obfuscation likely")
	}
	if len(trace.BridgeUsage) > 0 {
		recs = append(recs, "Cross-chain transfer detected, may indicate jurisdiction evasion")
	}
	if len(trace.CEXDeposits) > 0 {
		recs = append(recs, "Funds deposited to known exchange, easier to trace further")
	}
	if trace.MaxDepth > 8 {
		recs = append(recs, "Very long transfer chain, sophisticated evasion attempt")
	}

	return recs
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}

	return false
}

const swapWindowSeconds = 300

// AtomicSwapPatterns groups transactions into five minute windows and flags
// windows where funds both enter and leave known exchanges.
func (t *Tracer) AtomicSwapPatterns(txs []etherscan.Transaction) []SwapPattern {
	type window struct {
		deposits    int
		withdrawals int
		exchanges   map[string]struct{}
	}

	windows := make(map[int64]*window)
	for _, tx := range txs {
		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)
		if !isCEX(from) && !isCEX(to) {
			continue
		}

		key := tx.Time().Unix() / swapWindowSeconds
		w := windows[key]
		if w == nil {
			w = &window{exchanges: make(map[string]struct{})}
			windows[key] = w
		}

		if isCEX(to) {
			w.deposits++
			w.exchanges[to] = struct{}{}
		}
		if isCEX(from) {
			w.withdrawals++
			w.exchanges[from] = struct{}{}
		}
	}

	var patterns []SwapPattern
	for key, w := range windows {
		if w.deposits == 0 || w.withdrawals == 0 {
			continue
		}

		exchanges := make([]string, 0, len(w.exchanges))
		for addr := range w.exchanges {
			exchanges = append(exchanges, addr)
		}
		sort.Strings(exchanges)

		patterns = append(patterns, SwapPattern{
			WindowStart: key * swapWindowSeconds,
			Deposits:    w.deposits,
			Withdrawals: w.withdrawals,
			Exchanges:   exchanges,
		})
	}

	sort.Slice(patterns, func(i, j int) bool { return patterns[i].WindowStart < patterns[j].WindowStart })

	return patterns
}
