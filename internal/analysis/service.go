package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/internal/metrics"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const topCounterparties = 10

// TransactionProvider fetches on-chain activity for an address.
type TransactionProvider interface {
	Transactions(ctx context.Context, address string, chainID etherscan.ChainID, opts etherscan.FetchOptions) ([]etherscan.Transaction, etherscan.Counts, error)
}

// Request describes one analysis run.
type Request struct {
	Address   string
	ChainID   etherscan.ChainID
	StartDate string // YYYY-MM-DD, optional
	EndDate   string // YYYY-MM-DD, optional

	IncludeInternal       bool
	IncludeTokenTransfers bool
}

// Result bundles everything one run produces.
type Result struct {
	ID      uuid.UUID
	Summary *Summary
	Graph   *Graph
	Counts  etherscan.Counts
	Txs     []etherscan.Transaction
}

type Service struct {
	repo     *Repo
	provider TransactionProvider
}

func NewService(r *Repo, provider TransactionProvider) *Service {
	return &Service{
		repo:     r,
		provider: provider,
	}
}

// Analyze fetches the address history, computes the summary and flow graph
// and persists the run.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	defer func(start time.Time) {
		log.Info().
			Str("address", req.Address).
			Int64("chain_id", int64(req.ChainID)).
			Dur("duration", time.Since(start)).
			Msg("analysis finished")
	}(time.Now())

	if err := req.ChainID.Validate(); err != nil {
		return nil, err
	}

	txs, counts, err := s.provider.Transactions(ctx, req.Address, req.ChainID, etherscan.FetchOptions{
		IncludeInternal:       req.IncludeInternal,
		IncludeTokenTransfers: req.IncludeTokenTransfers,
	})
	if err != nil {
		metrics.CollectAnalysis(etherscan.ChainName(req.ChainID), err)

		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	txs = filterByDateWindow(txs, req.StartDate, req.EndDate)

	summary := BuildSummary(req.Address, req.ChainID, txs)
	summary.StartDate = req.StartDate
	summary.EndDate = req.EndDate

	graph := BuildGraph(txs)

	record, err := s.buildRecord(req, summary, graph, counts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(record); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	metrics.CollectAnalysis(etherscan.ChainName(req.ChainID), nil)

	return &Result{
		ID:      record.ID,
		Summary: summary,
		Graph:   graph,
		Counts:  counts,
		Txs:     txs,
	}, nil
}

func (s *Service) buildRecord(req Request, summary *Summary, graph *Graph, counts etherscan.Counts) (*Record, error) {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	gexf, err := graph.GEXF()
	if err != nil {
		return nil, fmt.Errorf("render gexf: %w", err)
	}

	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return nil, fmt.Errorf("marshal counts: %w", err)
	}

	return &Record{
		ID:              uuid.New(),
		Address:         strings.ToLower(req.Address),
		ChainID:         int64(req.ChainID),
		ChainName:       etherscan.ChainName(req.ChainID),
		RiskScore:       summary.RiskScore,
		ConfidenceScore: summary.ConfidenceScore,
		SummaryJSON:     string(summaryJSON),
		GraphGEXF:       gexf,
		CountsJSON:      string(countsJSON),
	}, nil
}

// GetByID returns a stored run with its summary decoded.
func (s *Service) GetByID(id uuid.UUID) (Record, *Summary, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return Record{}, nil, err
	}

	var summary Summary
	if err := json.Unmarshal([]byte(record.SummaryJSON), &summary); err != nil {
		return Record{}, nil, fmt.Errorf("decode summary: %w", err)
	}

	return record, &summary, nil
}

// GetLatestByAddress returns the newest stored run for an address.
func (s *Service) GetLatestByAddress(address string) (Record, *Summary, error) {
	record, err := s.repo.GetLatestByAddress(address)
	if err != nil {
		return Record{}, nil, err
	}

	var summary Summary
	if err := json.Unmarshal([]byte(record.SummaryJSON), &summary); err != nil {
		return Record{}, nil, fmt.Errorf("decode summary: %w", err)
	}

	return record, &summary, nil
}

func (s *Service) GetByFilters(filters []Filter) ([]Record, error) {
	return s.repo.GetByFilters(filters)
}

// BuildSummary computes statistics, patterns, scoring and attribution for
// one address over its transaction set.
func BuildSummary(address string, chainID etherscan.ChainID, txs []etherscan.Transaction) *Summary {
	root := strings.ToLower(address)

	summary := &Summary{
		Address:           root,
		ChainID:           int64(chainID),
		ChainName:         etherscan.ChainName(chainID),
		TotalTransactions: len(txs),
		IncomingAddresses: make(map[string]float64),
		OutgoingAddresses: make(map[string]float64),
	}

	var values []float64
	senders := make(map[string]struct{})
	receivers := make(map[string]struct{})

	for _, tx := range txs {
		val := tx.Amount().InexactFloat64()
		if val > 0 {
			values = append(values, val)
		}

		from := strings.ToLower(tx.From)
		to := strings.ToLower(tx.To)

		senders[from] = struct{}{}
		receivers[to] = struct{}{}

		switch root {
		case to:
			summary.TotalVolumeIn += val
			summary.IncomingAddresses[from] += val
		case from:
			summary.TotalVolumeOut += val
			summary.OutgoingAddresses[to] += val
		}
	}

	summary.NetFlow = summary.TotalVolumeIn - summary.TotalVolumeOut
	summary.UniqueSenders = len(senders)
	summary.UniqueReceivers = len(receivers)

	if len(values) > 0 {
		summary.AvgTransactionValue = mean(values)
		summary.MedianTransactionValue = median(values)
		summary.MaxTransactionValue = maxOf(values)
	}

	summary.TopVictims = topByVolume(summary.IncomingAddresses, topCounterparties)
	summary.TopSuspects = topByVolume(summary.OutgoingAddresses, topCounterparties)
	summary.CashOutPoints = cashOutPoints(summary.OutgoingAddresses)

	summary.Patterns = DetectPatterns(txs, root)
	summary.RiskScore, summary.RiskFactors = CalculateRiskScore(summary.Patterns, len(txs))
	summary.ConfidenceScore = CalculateConfidence(len(txs), summary.UniqueSenders, summary.UniqueReceivers, summary.Patterns)
	summary.EntityInfo = IdentifyEntity(root, len(summary.IncomingAddresses), len(summary.OutgoingAddresses))

	return summary
}

// BuildGraph builds the directed value-flow graph over the transaction set.
func BuildGraph(txs []etherscan.Transaction) *Graph {
	graph := NewGraph()
	for _, tx := range txs {
		if tx.From == "" || tx.To == "" {
			continue
		}

		graph.AddEdge(tx.From, tx.To, tx.Amount().InexactFloat64())
	}

	return graph
}

// filterByDateWindow keeps transactions inside the [startDate, endDate]
// window. A bound that does not parse is treated as unbounded rather than
// failing the run.
func filterByDateWindow(txs []etherscan.Transaction, startDate, endDate string) []etherscan.Transaction {
	if startDate == "" && endDate == "" {
		return txs
	}

	var start, end time.Time

	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			log.Warn().Str("start_date", startDate).Msg("unparseable start date ignored")
		} else {
			start = parsed
		}
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			log.Warn().Str("end_date", endDate).Msg("unparseable end date ignored")
		} else {
			// the whole end day is included
			end = parsed.Add(24*time.Hour - time.Nanosecond)
		}
	}

	filtered := make([]etherscan.Transaction, 0, len(txs))
	for _, tx := range txs {
		ts := tx.Time()
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}

		filtered = append(filtered, tx)
	}

	return filtered
}

func topByVolume(volumes map[string]float64, limit int) []Counterparty {
	list := make([]Counterparty, 0, len(volumes))
	for addr, vol := range volumes {
		list = append(list, Counterparty{Address: addr, Volume: vol})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Volume != list[j].Volume {
			return list[i].Volume > list[j].Volume
		}

		return list[i].Address < list[j].Address
	})

	if len(list) > limit {
		list = list[:limit]
	}

	return list
}

// cashOutPoints are outgoing counterparties known to be exchanges, places
// where stolen funds leave the chain.
func cashOutPoints(outgoing map[string]float64) []string {
	var points []string
	for addr := range outgoing {
		entity, ok := KnownEntity(addr)
		if !ok {
			continue
		}

		if entity.Type == EntityExchange {
			points = append(points, addr)
		}
	}

	sort.Strings(points)

	return points
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}

	return sorted[mid]
}
