package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const (
	sourceCacheSize = 256
	sourceCacheTTL  = 15 * time.Minute
)

// SourceProvider fetches verified contract source from a block explorer.
type SourceProvider interface {
	ContractSource(ctx context.Context, address string, chainID etherscan.ChainID) (*etherscan.ContractSource, error)
}

type Service struct {
	repo     *Repo
	provider SourceProvider
	cache    *lru.LRU[string, *etherscan.ContractSource]
}

func NewService(repo *Repo, provider SourceProvider) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		cache:    lru.NewLRU[string, *etherscan.ContractSource](sourceCacheSize, nil, sourceCacheTTL),
	}
}

// Analyze screens a contract for rug-pull and honeypot constructs and stores
// the verdict.
func (s *Service) Analyze(ctx context.Context, address string, chainID etherscan.ChainID) (*Report, error) {
	if err := chainID.Validate(); err != nil {
		return nil, err
	}

	source, err := s.fetchSource(ctx, address, chainID)
	if err != nil {
		return nil, fmt.Errorf("fetch contract source: %w", err)
	}

	var report *Report
	if !source.Verified() {
		report = &Report{
			Address:          address,
			IsVerified:       false,
			Error:            "contract source not available or not verified",
			OverallRiskLevel: "UNKNOWN",
			AnalyzedAt:       time.Now().UTC(),
		}
	} else {
		report = BuildReport(address, source.ContractName, source.CompilerVersion, source.SourceCode)
	}

	if err := s.store(address, chainID, report); err != nil {
		log.Error().Err(err).Str("address", address).Msg("store contract screening")
	}

	return report, nil
}

func (s *Service) fetchSource(ctx context.Context, address string, chainID etherscan.ChainID) (*etherscan.ContractSource, error) {
	key := fmt.Sprintf("%d:%s", chainID, strings.ToLower(address))
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	source, err := s.provider.ContractSource(ctx, address, chainID)
	if err != nil {
		return nil, err
	}

	s.cache.Add(key, source)

	return source, nil
}

func (s *Service) store(address string, chainID etherscan.ChainID, report *Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	return s.repo.Create(&ScreeningRecord{
		ID:         uuid.New(),
		Address:    strings.ToLower(address),
		ChainID:    int64(chainID),
		IsVerified: report.IsVerified,
		RiskScore:  report.OverallRiskScore,
		RiskLevel:  report.OverallRiskLevel,
		ReportJSON: string(payload),
	})
}

// History returns stored screenings for an address, newest first.
func (s *Service) History(address string) ([]ScreeningRecord, error) {
	return s.repo.GetByAddress(address)
}
