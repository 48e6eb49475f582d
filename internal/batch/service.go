package batch

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/internal/analysis"
	"github.com/openchain-labs/openchain-ir/internal/threat"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

const defaultConcurrency = 4

// Analyzer runs a single-address analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

// ThreatChecker flags known-bad addresses. A nil checker skips flagging.
type ThreatChecker interface {
	Check(address string) threat.CheckResult
}

type Service struct {
	repo     *Repo
	analyzer Analyzer
	threats  ThreatChecker
	pool     pond.Pool
}

func NewService(repo *Repo, analyzer Analyzer, threats ThreatChecker, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Service{
		repo:     repo,
		analyzer: analyzer,
		threats:  threats,
		pool:     pond.NewPool(concurrency),
	}
}

// ParseCSV extracts batch entries from an uploaded CSV. The address column
// may be named address, Address or addr; tag and notes columns are optional.
func ParseCSV(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	columns := map[string]int{}
	for idx, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	addrCol, ok := columns["address"]
	if !ok {
		addrCol, ok = columns["addr"]
	}
	if !ok {
		return nil, fmt.Errorf("csv has no address column")
	}

	pick := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[idx])
	}

	var entries []Entry
	for _, record := range records[1:] {
		if addrCol >= len(record) {
			continue
		}

		address := strings.TrimSpace(record[addrCol])
		if address == "" {
			continue
		}

		entries = append(entries, Entry{
			Address: address,
			Tag:     pick(record, "tag"),
			Notes:   pick(record, "notes"),
		})
	}

	return entries, nil
}

// Run analyzes every entry concurrently and persists the job as it moves
// through its lifecycle. The call blocks until the whole batch finishes.
func (s *Service) Run(ctx context.Context, chainID etherscan.ChainID, entries []Entry) (*Job, []Result, error) {
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("no addresses to analyze")
	}
	if err := chainID.Validate(); err != nil {
		return nil, nil, err
	}

	job := &Job{
		ID:      uuid.New(),
		ChainID: int64(chainID),
		Status:  JobPending,
		Total:   len(entries),
	}
	if err := s.repo.Create(job); err != nil {
		return nil, nil, fmt.Errorf("create job: %w", err)
	}

	job.Status = JobRunning
	if err := s.repo.Update(job); err != nil {
		return nil, nil, fmt.Errorf("update job: %w", err)
	}

	var mu sync.Mutex
	results := make([]Result, len(entries))

	group := s.pool.NewGroup()
	for i, entry := range entries {
		group.Submit(func() {
			result := s.analyzeOne(ctx, chainID, entry)

			mu.Lock()
			results[i] = result
			if result.Status == "FAILED" {
				job.Failed++
			} else {
				job.Completed++
			}
			mu.Unlock()
		})
	}

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("batch group failed")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal results: %w", err)
	}

	now := time.Now()
	job.Status = finalStatus(job.Completed, job.Failed)
	job.FinishedAt = &now
	job.ResultsJSON = string(payload)
	if err := s.repo.Update(job); err != nil {
		return nil, nil, fmt.Errorf("update job: %w", err)
	}

	return job, results, nil
}

func (s *Service) analyzeOne(ctx context.Context, chainID etherscan.ChainID, entry Entry) Result {
	result := Result{
		Address: entry.Address,
		Tag:     entry.Tag,
		Notes:   entry.Notes,
	}

	if s.threats != nil {
		check := s.threats.Check(entry.Address)
		result.ThreatFlagged = check.IsFlagged
		result.ThreatSources = check.ThreatSources
	}

	run, err := s.analyzer.Analyze(ctx, analysis.Request{
		Address: entry.Address,
		ChainID: chainID,
	})
	if err != nil {
		result.Status = "FAILED"
		result.Error = err.Error()

		return result
	}

	summary := run.Summary
	result.Status = "ANALYZED"
	result.TotalTransactions = summary.TotalTransactions
	result.RiskScore = summary.RiskScore
	result.ConfidenceScore = summary.ConfidenceScore
	result.EntityType = string(summary.EntityInfo.Type)
	result.TotalReceived = summary.TotalVolumeIn
	result.TotalSent = summary.TotalVolumeOut
	result.PatternsDetected = summary.RiskFactors
	result.VictimCount = len(summary.TopVictims)
	result.SuspectCount = len(summary.TopSuspects)

	return result
}

// finalStatus marks a batch failed only when not a single address made it
// through.
func finalStatus(completed, failed int) JobStatus {
	if completed == 0 && failed > 0 {
		return JobFailed
	}

	return JobFinished
}

// GetJob returns a stored job with decoded results.
func (s *Service) GetJob(id uuid.UUID) (Job, []Result, error) {
	job, err := s.repo.GetByID(id)
	if err != nil {
		return Job{}, nil, err
	}

	var results []Result
	if job.ResultsJSON != "" {
		if err := json.Unmarshal([]byte(job.ResultsJSON), &results); err != nil {
			return Job{}, nil, fmt.Errorf("decode results: %w", err)
		}
	}

	return job, results, nil
}

// StopPool drains the worker pool on shutdown.
func (s *Service) StopPool() {
	s.pool.StopAndWait()
}
