package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/openchain-labs/openchain-ir/internal/config"
	"github.com/openchain-labs/openchain-ir/internal/metrics"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
)

var ErrLimitReached = errors.New("monitored address limit reached")

const (
	// Anomaly checks run over this many most recent transactions.
	recentWindow = 10
	// Fewer recent transactions than this and the anomaly checks stay quiet.
	anomalyMinTxs = 5
	// Average gap below this many seconds counts as unusual frequency.
	rapidGapSeconds = 30.0
	// A transaction above this multiple of the window average is unusual.
	unusualAmountMultiple = 5.0
)

// TransactionProvider fetches the transaction history used for checks.
type TransactionProvider interface {
	Transactions(ctx context.Context, address string, chainID etherscan.ChainID, opts etherscan.FetchOptions) ([]etherscan.Transaction, etherscan.Counts, error)
}

// BalanceProvider reads the current on-chain balance.
type BalanceProvider interface {
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
}

// Publisher pushes generated alert events to the message bus.
type Publisher interface {
	PublishAlert(ctx context.Context, event Event) error
}

// Subscription describes one address to watch.
type Subscription struct {
	Address                string
	ChainID                etherscan.ChainID
	AlertOnNewTx           bool
	AlertOnAnomaly         bool
	AlertOnNewCounterparty bool
}

type Service struct {
	repo      *Repo
	txs       TransactionProvider
	balances  BalanceProvider
	publisher Publisher
	cfg       config.Monitor
}

func NewService(repo *Repo, txs TransactionProvider, balances BalanceProvider, publisher Publisher, cfg config.Monitor) *Service {
	return &Service{
		repo:      repo,
		txs:       txs,
		balances:  balances,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Subscribe registers an address for periodic checks. The monitored set is
// bounded by configuration.
func (s *Service) Subscribe(sub Subscription) (*Job, error) {
	count, err := s.repo.CountJobs()
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	if count >= int64(s.cfg.MaxAddresses) {
		return nil, ErrLimitReached
	}

	if _, err := s.repo.GetJobByAddress(sub.Address); err == nil {
		return nil, fmt.Errorf("address %s is already monitored", sub.Address)
	}

	job := &Job{
		ID:                     uuid.New(),
		Address:                strings.ToLower(sub.Address),
		ChainID:                int64(sub.ChainID),
		Active:                 true,
		AlertOnNewTx:           sub.AlertOnNewTx,
		AlertOnAnomaly:         sub.AlertOnAnomaly,
		AlertOnNewCounterparty: sub.AlertOnNewCounterparty,
	}

	if err := s.repo.CreateJob(job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	return job, nil
}

func (s *Service) Unsubscribe(address string) error {
	job, err := s.repo.GetJobByAddress(address)
	if err != nil {
		return err
	}

	return s.repo.DeleteJob(&job)
}

func (s *Service) Status() (*Status, error) {
	jobs, err := s.repo.GetJobs()
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	totalChecks, totalAnomalies := 0, 0
	for _, job := range jobs {
		totalChecks += job.CheckCount
		totalAnomalies += job.AnomaliesDetected
	}

	totalAlerts, err := s.repo.CountAlerts(false)
	if err != nil {
		return nil, fmt.Errorf("count alerts: %w", err)
	}
	pending, err := s.repo.CountAlerts(true)
	if err != nil {
		return nil, fmt.Errorf("count pending alerts: %w", err)
	}

	return &Status{
		MonitoringActive:     len(jobs) > 0,
		TotalMonitored:       len(jobs),
		CheckIntervalSeconds: int(s.cfg.CheckInterval.Seconds()),
		TotalChecksPerformed: totalChecks,
		TotalAnomalies:       totalAnomalies,
		TotalAlerts:          totalAlerts,
		UnacknowledgedAlerts: pending,
		Jobs:                 jobs,
	}, nil
}

func (s *Service) Alerts(filters []Filter) ([]Alert, error) {
	return s.repo.GetAlertsByFilters(filters)
}

func (s *Service) AcknowledgeAlert(id uuid.UUID) (*Alert, error) {
	alert, err := s.repo.GetAlertByID(id)
	if err != nil {
		return nil, err
	}

	alert.Acknowledged = true
	if err := s.repo.UpdateAlert(&alert); err != nil {
		return nil, fmt.Errorf("update alert: %w", err)
	}

	return &alert, nil
}

// CheckAll runs one monitoring pass over every active job.
func (s *Service) CheckAll(ctx context.Context) error {
	jobs, err := s.repo.GetActiveJobs()
	if err != nil {
		return fmt.Errorf("get active jobs: %w", err)
	}

	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.checkJob(ctx, &jobs[i]); err != nil {
			log.Warn().Err(err).Str("address", jobs[i].Address).Msg("monitoring check failed")
		}
	}

	return nil
}

func (s *Service) checkJob(ctx context.Context, job *Job) error {
	txs, counts, err := s.txs.Transactions(ctx, job.Address, etherscan.ChainID(job.ChainID), etherscan.FetchOptions{})
	if err != nil {
		return fmt.Errorf("fetch transactions: %w", err)
	}

	now := time.Now()
	job.LastCheckedAt = &now
	job.CheckCount++

	var events []Event

	if total := counts.Total(); total > job.LastTxCount {
		if job.AlertOnNewTx && job.LastTxCount > 0 {
			newTxs := total - job.LastTxCount
			events = append(events, Event{
				Address:     job.Address,
				Type:        AlertNewTransaction,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("%d new transaction(s) detected", newTxs),
				Metadata:    map[string]string{"new_tx_count": fmt.Sprintf("%d", newTxs)},
			})
		}
		job.LastTxCount = total
	}

	if job.AlertOnAnomaly {
		anomalies := detectAnomalies(job.Address, txs)
		job.AnomaliesDetected += len(anomalies)
		events = append(events, anomalies...)
	}

	if job.AlertOnNewCounterparty {
		if event := s.checkCounterparties(job, txs); event != nil {
			events = append(events, *event)
		}
	}

	if event := s.checkBalance(ctx, job); event != nil {
		events = append(events, *event)
	}

	if err := s.repo.UpdateJob(job); err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	for _, event := range events {
		event.ID = uuid.New()
		event.GeneratedAt = now

		if err := s.publisher.PublishAlert(ctx, event); err != nil {
			log.Error().Err(err).Str("address", job.Address).Msg("publish alert")
		}

		metrics.CollectAlert(string(event.Type), string(event.Severity))
	}

	return nil
}

// StoreAlert persists an alert event coming back from the bus.
func (s *Service) StoreAlert(event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	alert := &Alert{
		ID:          event.ID,
		Address:     event.Address,
		Type:        event.Type,
		Severity:    event.Severity,
		Description: event.Description,
	}

	if len(event.Metadata) > 0 {
		raw, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		alert.MetadataJSON = string(raw)
	}

	if err := s.repo.CreateAlert(alert); err != nil {
		return fmt.Errorf("create alert: %w", err)
	}

	return nil
}

func (s *Service) checkCounterparties(job *Job, txs []etherscan.Transaction) *Event {
	known := job.knownSet()
	firstRun := len(known) == 0

	var fresh []string
	for _, tx := range txs {
		counterparty := strings.ToLower(tx.From)
		if counterparty == job.Address {
			counterparty = strings.ToLower(tx.To)
		}
		if counterparty == "" || counterparty == job.Address {
			continue
		}

		if _, ok := known[counterparty]; !ok {
			known[counterparty] = struct{}{}
			fresh = append(fresh, counterparty)
		}
	}

	job.storeKnownSet(known)

	// The first pass seeds the known set without alerting.
	if firstRun || len(fresh) == 0 {
		return nil
	}

	return &Event{
		Address:     job.Address,
		Type:        AlertNewCounterparty,
		Severity:    SeverityLow,
		Description: fmt.Sprintf("New counterparties detected: %d", len(fresh)),
		Metadata:    map[string]string{"new_counterparties": strings.Join(fresh, ",")},
	}
}

func (s *Service) checkBalance(ctx context.Context, job *Job) *Event {
	if s.balances == nil {
		return nil
	}

	balance, err := s.balances.Balance(ctx, job.Address)
	if err != nil {
		log.Warn().Err(err).Str("address", job.Address).Msg("balance check failed")

		return nil
	}

	previous := job.LastBalance
	current := balance.String()
	job.LastBalance = current

	if previous == "" || previous == current {
		return nil
	}

	return &Event{
		Address:     job.Address,
		Type:        AlertBalanceChange,
		Severity:    SeverityLow,
		Description: fmt.Sprintf("Balance changed from %s to %s ETH", previous, current),
		Metadata:    map[string]string{"previous": previous, "current": current},
	}
}

func detectAnomalies(address string, txs []etherscan.Transaction) []Event {
	if len(txs) > recentWindow {
		txs = txs[len(txs)-recentWindow:]
	}
	if len(txs) < anomalyMinTxs {
		return nil
	}

	var events []Event

	var gapSum float64
	for i := 1; i < len(txs); i++ {
		gapSum += txs[i].Time().Sub(txs[i-1].Time()).Seconds()
	}
	if avgGap := gapSum / float64(len(txs)-1); avgGap < rapidGapSeconds {
		events = append(events, Event{
			Address:     address,
			Type:        AlertUnusualFrequency,
			Severity:    SeverityHigh,
			Description: "Rapid succession of transactions",
		})
	}

	var amountSum float64
	amounts := make([]float64, 0, len(txs))
	for _, tx := range txs {
		amount := tx.Amount().InexactFloat64()
		amounts = append(amounts, amount)
		amountSum += amount
	}

	avgAmount := amountSum / float64(len(amounts))
	for _, amount := range amounts {
		if avgAmount > 0 && amount > avgAmount*unusualAmountMultiple {
			events = append(events, Event{
				Address:     address,
				Type:        AlertUnusualAmount,
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("Transaction amount %.4f far exceeds average %.4f", amount, avgAmount),
			})

			break
		}
	}

	return events
}
