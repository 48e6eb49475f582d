package threat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var threatTypeBySource = map[string]string{
	SourceChainalysis:       "sanctioned_entity",
	SourceOFAC:              "ofac_sdn_list",
	SourceScamAlert:         "known_scammer",
	SourceEtherscanPhishing: "phishing_address",
}

type Service struct {
	repo  *Repo
	cache *Cache
}

func NewService(repo *Repo, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Warmup loads feed files from dir and merges persisted indicators into the
// cache.
func (s *Service) Warmup(dir string) error {
	if err := LoadFeeds(dir, s.cache); err != nil {
		return fmt.Errorf("load feeds: %w", err)
	}

	indicators, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("load stored indicators: %w", err)
	}

	for _, indicator := range indicators {
		s.cache.AddItems(indicator.Source, indicator.Address)
	}

	return nil
}

// Check matches one address against every loaded feed. Severity grows with
// the number of independent feeds agreeing.
func (s *Service) Check(address string) CheckResult {
	sources := s.cache.SourcesFor(address)
	sort.Strings(sources)

	result := CheckResult{Severity: "none"}
	if len(sources) == 0 {
		return result
	}

	result.IsFlagged = true
	result.ThreatSources = sources
	for _, source := range sources {
		threatType, ok := threatTypeBySource[source]
		if !ok {
			threatType = source
		}
		result.ThreatTypes = append(result.ThreatTypes, threatType)
	}

	switch {
	case len(sources) >= 3:
		result.Severity, result.Confidence = "critical", 0.95
	case len(sources) == 2:
		result.Severity, result.Confidence = "high", 0.85
	default:
		result.Severity, result.Confidence = "medium", 0.75
	}

	return result
}

// BatchCheck matches many addresses at once.
func (s *Service) BatchCheck(addresses []string) map[string]CheckResult {
	results := make(map[string]CheckResult, len(addresses))
	for _, addr := range addresses {
		results[addr] = s.Check(addr)
	}

	return results
}

// AddIndicator persists a new indicator and pushes it to the cache.
func (s *Service) AddIndicator(address, source string) (*Indicator, error) {
	indicator := &Indicator{
		ID:      uuid.New(),
		Address: strings.ToLower(address),
		Source:  source,
	}

	if err := s.repo.Create(indicator); err != nil {
		return nil, fmt.Errorf("create indicator: %w", err)
	}

	s.cache.AddItems(source, address)

	return indicator, nil
}

// IndicatorCount reports how many addresses are currently flagged.
func (s *Service) IndicatorCount() int {
	return s.cache.Size()
}
