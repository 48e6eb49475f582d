package cluster

import (
	"math"
	"sort"
	"strings"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const (
	minInteractions  = 5
	dustThreshold    = 0.1
	maxCircularDepth = 3
	timingWindow     = 300 // seconds
	minClusterSize   = 5

	maxCounterparties = 10
	maxDustRecipients = 20
	maxCircularPaths  = 10
	maxAmountClusters = 10
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Detect runs every clustering heuristic over the transaction set of one
// address and groups related counterparties.
func (s *Service) Detect(txs []etherscan.Transaction, mainAddress string) Clusters {
	root := strings.ToLower(mainAddress)
	graph := buildUndirectedGraph(txs)

	return Clusters{
		SuspiciousCounterparties: frequentCounterparties(graph, root),
		DustAttacks:              dustAttacks(txs, root),
		CircularPatterns:         circularPatterns(graph, root),
		TimingClusters:           timingClusters(txs),
		AmountClusters:           amountPatterns(txs),
	}
}

func buildUndirectedGraph(txs []etherscan.Transaction) map[string]map[string]struct{} {
	graph := make(map[string]map[string]struct{})

	link := func(a, b string) {
		if graph[a] == nil {
			graph[a] = make(map[string]struct{})
		}
		graph[a][b] = struct{}{}
	}

	for _, tx := range txs {
		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)
		if from == "" || to == "" {
			continue
		}

		link(from, to)
		link(to, from)
	}

	return graph
}

func frequentCounterparties(graph map[string]map[string]struct{}, root string) []Counterparty {
	neighbors, ok := graph[root]
	if !ok {
		return nil
	}

	addresses := make([]string, 0, len(neighbors))
	for addr := range neighbors {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)

	risk := 0.3
	if len(addresses) > maxCounterparties {
		risk = 0.6
	}

	if len(addresses) > maxCounterparties {
		addresses = addresses[:maxCounterparties]
	}

	result := make([]Counterparty, 0, len(addresses))
	for _, addr := range addresses {
		result = append(result, Counterparty{
			Address:        addr,
			ConnectionType: "frequent_interaction",
			RiskScore:      risk,
		})
	}

	return result
}

func dustAttacks(txs []etherscan.Transaction, root string) []DustRecipient {
	seen := make(map[string]struct{})
	var recipients []DustRecipient

	for _, tx := range txs {
		if strings.ToLower(tx.From) != root {
			continue
		}

		to := strings.ToLower(tx.To)
		if _, ok := seen[to]; ok {
			continue
		}

		val := tx.Amount().InexactFloat64()
		if val <= 0 || val >= dustThreshold {
			continue
		}

		seen[to] = struct{}{}
		recipients = append(recipients, DustRecipient{
			Address:      to,
			Pattern:      "dust_attack",
			RiskScore:    0.7,
			IsSuspicious: true,
		})

		if len(recipients) == maxDustRecipients {
			break
		}
	}

	return recipients
}

func circularPatterns(graph map[string]map[string]struct{}, root string) []CircularPath {
	var circular []CircularPath
	visited := map[string]struct{}{root: {}}

	var walk func(current string, path []string, depth int)
	walk = func(current string, path []string, depth int) {
		if depth > maxCircularDepth || len(circular) >= maxCircularPaths {
			return
		}

		neighbors := sortedKeys(graph[current])
		for _, neighbor := range neighbors {
			if neighbor == root && len(path) >= 2 {
				full := append(append([]string{}, path...), current, root)
				circular = append(circular, CircularPath{
					Path:         full,
					Pattern:      "circular",
					RiskScore:    0.8,
					IsSuspicious: true,
				})

				if len(circular) >= maxCircularPaths {
					return
				}

				continue
			}

			if _, ok := visited[neighbor]; ok {
				continue
			}

			visited[neighbor] = struct{}{}
			walk(neighbor, append(append([]string{}, path...), current), depth+1)
			delete(visited, neighbor)
		}
	}

	walk(root, nil, 1)

	return circular
}

func timingClusters(txs []etherscan.Transaction) []TimingCluster {
	if len(txs) == 0 {
		return nil
	}

	sorted := make([]etherscan.Transaction, len(txs))
	copy(sorted, txs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time().Before(sorted[j].Time())
	})

	var clusters []TimingCluster

	flush := func(batch []etherscan.Transaction) {
		if len(batch) < minClusterSize {
			return
		}

		risk := 0.5 + float64(len(batch))*0.05
		if risk > 0.95 {
			risk = 0.95
		}

		clusters = append(clusters, TimingCluster{
			ClusterSize:  len(batch),
			StartTime:    batch[0].Time().Unix(),
			EndTime:      batch[len(batch)-1].Time().Unix(),
			Pattern:      "timing_cluster",
			RiskScore:    risk,
			IsSuspicious: len(batch) > 10,
		})
	}

	current := []etherscan.Transaction{sorted[0]}
	for _, tx := range sorted[1:] {
		gap := tx.Time().Unix() - current[len(current)-1].Time().Unix()
		if gap <= timingWindow {
			current = append(current, tx)

			continue
		}

		flush(current)
		current = []etherscan.Transaction{tx}
	}
	flush(current)

	return clusters
}

func amountPatterns(txs []etherscan.Transaction) []AmountCluster {
	type bucket struct {
		amount     float64
		recipients map[string]struct{}
		count      int
	}

	buckets := make(map[float64]*bucket)
	for _, tx := range txs {
		val := tx.Amount().InexactFloat64()
		if val <= 0 {
			continue
		}

		key := math.Round(val*1e4) / 1e4
		b, ok := buckets[key]
		if !ok {
			b = &bucket{amount: key, recipients: make(map[string]struct{})}
			buckets[key] = b
		}

		b.count++
		b.recipients[strings.ToLower(tx.To)] = struct{}{}
	}

	var patterns []AmountCluster
	for _, b := range buckets {
		if b.count < 3 || len(b.recipients) < 3 {
			continue
		}

		patterns = append(patterns, AmountCluster{
			Amount:         b.amount,
			RecipientCount: len(b.recipients),
			Pattern:        "amount_splitting",
			RiskScore:      0.6,
			IsSuspicious:   true,
		})
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].RecipientCount != patterns[j].RecipientCount {
			return patterns[i].RecipientCount > patterns[j].RecipientCount
		}

		return patterns[i].Amount < patterns[j].Amount
	})

	if len(patterns) > maxAmountClusters {
		patterns = patterns[:maxAmountClusters]
	}

	return patterns
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
