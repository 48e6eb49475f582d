package advanced

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openchain-labs/openchain-ir/internal/anomaly"
	"github.com/openchain-labs/openchain-ir/internal/cluster"
	"github.com/openchain-labs/openchain-ir/internal/taint"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const taintMaxDepth = 10

// TransactionProvider fetches the history the deep checks run over.
type TransactionProvider interface {
	Transactions(ctx context.Context, address string, chainID etherscan.ChainID, opts etherscan.FetchOptions) ([]etherscan.Transaction, etherscan.Counts, error)
}

// Profile is the combined output of the deep analysis passes over one address.
type Profile struct {
	Address            string              `json:"address"`
	ChainID            int64               `json:"chain_id"`
	TransactionCount   int                 `json:"transaction_count"`
	Clusters           cluster.Clusters    `json:"clusters"`
	Anomalies          []anomaly.Anomaly   `json:"anomalies"`
	Baseline           *anomaly.Baseline   `json:"baseline,omitempty"`
	Taint              *taint.Trace        `json:"taint,omitempty"`
	MixerInteractions  []taint.Interaction `json:"mixer_interactions"`
	BridgeInteractions []taint.Interaction `json:"bridge_interactions"`
	SwapPatterns       []taint.SwapPattern `json:"swap_patterns"`
	AnalyzedAt         time.Time           `json:"analyzed_at"`
}

type Service struct {
	txs      TransactionProvider
	clusters *cluster.Service
	detector *anomaly.Detector
}

func NewService(txs TransactionProvider) *Service {
	return &Service{
		txs:      txs,
		clusters: cluster.NewService(),
		detector: anomaly.NewDetector(),
	}
}

// Analyze fetches the address history and runs clustering, anomaly detection
// and taint tracing over it.
func (s *Service) Analyze(ctx context.Context, address string, chainID etherscan.ChainID) (*Profile, error) {
	if err := chainID.Validate(); err != nil {
		return nil, err
	}

	txs, _, err := s.txs.Transactions(ctx, address, chainID, etherscan.FetchOptions{IncludeInternal: true})
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	root := strings.ToLower(address)
	tracer := taint.NewTracer(txs)

	profile := &Profile{
		Address:            root,
		ChainID:            int64(chainID),
		TransactionCount:   len(txs),
		Clusters:           s.clusters.Detect(txs, root),
		Anomalies:          s.detector.Detect(txs),
		Taint:              tracer.Trace(root, taintMaxDepth),
		MixerInteractions:  tracer.MixerInteractions(txs),
		BridgeInteractions: tracer.BridgeInteractions(txs),
		SwapPatterns:       tracer.AtomicSwapPatterns(txs),
		AnalyzedAt:         time.Now(),
	}

	if len(txs) > 0 {
		profile.Baseline = s.detector.BuildBaseline(txs)
	}

	return profile, nil
}
