package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/s-larionov/process-manager"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openchain-labs/openchain-ir/internal/advanced"
	"github.com/openchain-labs/openchain-ir/internal/ai"
	"github.com/openchain-labs/openchain-ir/internal/analysis"
	"github.com/openchain-labs/openchain-ir/internal/batch"
	"github.com/openchain-labs/openchain-ir/internal/casefile"
	"github.com/openchain-labs/openchain-ir/internal/chainconn"
	"github.com/openchain-labs/openchain-ir/internal/config"
	"github.com/openchain-labs/openchain-ir/internal/contract"
	"github.com/openchain-labs/openchain-ir/internal/defi"
	"github.com/openchain-labs/openchain-ir/internal/metrics"
	"github.com/openchain-labs/openchain-ir/internal/monitor"
	"github.com/openchain-labs/openchain-ir/internal/report"
	"github.com/openchain-labs/openchain-ir/internal/rest"
	"github.com/openchain-labs/openchain-ir/internal/secrets"
	"github.com/openchain-labs/openchain-ir/internal/threat"
	"github.com/openchain-labs/openchain-ir/pkg/health"
	"github.com/openchain-labs/openchain-ir/pkg/prometheus"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/etherscan"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/thegraph"
)

type Application struct {
	sigChan <-chan os.Signal
	manager *process.Manager
	cfg     config.App
	db      *gorm.DB

	natsConn  *nats.Conn
	connector *chainconn.Connector
	escan     *etherscan.Client

	analysisService *analysis.Service
	advancedService *advanced.Service
	contractService *contract.Service
	threatService   *threat.Service
	defiService     *defi.Service
	caseService     *casefile.Service
	batchService    *batch.Service
	aiService       *ai.Service
	monitorService  *monitor.Service
}

func NewApplication(cfg config.App) (*Application, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a := &Application{
		sigChan: sigChan,
		cfg:     cfg,
		manager: process.NewManager(),
	}

	err := a.bootstrap()
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Application) Run() {
	a.manager.StartAll()
	a.registerShutdown()
}

func (a *Application) bootstrap() error {
	initializers := []func() error{
		a.initSecrets,
		a.initDB,
		a.initNats,
		a.initChainConnector,

		// Init Dependencies
		a.initServices,

		// Init Workers: Application
		a.initAPI,
		a.initMonitoring,

		// Init Workers: System
		a.initPrometheusWorker,
		a.initHealthWorker,
	}

	for _, initializer := range initializers {
		if err := initializer(); err != nil {
			return err
		}
	}

	return nil
}

// initSecrets fills API keys that are missing from the environment from
// Vault. Skipped entirely when no Vault token is configured.
func (a *Application) initSecrets() error {
	if a.cfg.Vault.Token == "" {
		return nil
	}

	vaultCfg := vaultapi.DefaultConfig()
	vaultCfg.Address = a.cfg.Vault.Address

	client, err := vaultapi.NewClient(vaultCfg)
	if err != nil {
		return fmt.Errorf("vault client: %w", err)
	}
	client.SetToken(a.cfg.Vault.Token)

	store := secrets.NewStore(client.Logical(), a.cfg.Vault.BasePath)
	store.FillAPIKeys(&a.cfg)

	return nil
}

func (a *Application) initDB() error {
	db, err := gorm.Open(postgres.Open(a.cfg.DB.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	ps, err := db.DB()
	if err != nil {
		return err
	}
	ps.SetMaxOpenConns(a.cfg.DB.MaxOpenConnections)

	a.db = db
	if a.cfg.DB.Debug {
		a.db = db.Debug()
	}

	return a.db.AutoMigrate(
		&analysis.Record{},
		&casefile.Case{},
		&casefile.CaseAddress{},
		&casefile.Note{},
		&casefile.Finding{},
		&threat.Indicator{},
		&contract.ScreeningRecord{},
		&defi.Record{},
		&batch.Job{},
		&monitor.Job{},
		&monitor.Alert{},
	)
}

func (a *Application) initNats() error {
	nc, err := nats.Connect(
		a.cfg.Nats.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(a.cfg.Nats.MaxReconnects),
		nats.ReconnectWait(a.cfg.Nats.ReconnectTimeout),
	)
	if err != nil {
		return err
	}

	a.natsConn = nc

	return nil
}

// initChainConnector dials the node when an RPC URL is configured. Without it
// monitoring falls back to explorer data only.
func (a *Application) initChainConnector() error {
	a.connector = chainconn.NewConnector(a.cfg.Chain.RPCURL)
	if a.cfg.Chain.RPCURL == "" {
		log.Info().Msg("no rpc url configured, live balance checks disabled")

		return nil
	}

	if err := a.connector.Connect(context.Background()); err != nil {
		log.Warn().Err(err).Msg("chain node unavailable")
	}

	return nil
}

func (a *Application) initServices() error {
	a.escan = etherscan.NewClient(
		a.cfg.Etherscan.Endpoint,
		a.cfg.Etherscan.APIKey,
		&http.Client{Transport: metrics.NewRequestWatcher("etherscan")},
	)

	a.analysisService = analysis.NewService(analysis.NewRepo(a.db), a.escan)
	a.advancedService = advanced.NewService(a.escan)
	a.contractService = contract.NewService(contract.NewRepo(a.db), a.escan)
	a.caseService = casefile.NewService(casefile.NewRepo(a.db))

	a.defiService = defi.NewService(
		thegraph.NewClient(&http.Client{Transport: metrics.NewRequestWatcher("thegraph")}),
		defi.NewRepo(a.db),
		a.cfg.DeFi,
	)

	if err := a.initThreatIntel(); err != nil {
		return err
	}

	a.batchService = batch.NewService(batch.NewRepo(a.db), a.analysisService, a.threatService, 0)

	a.initAI()

	a.monitorService = monitor.NewService(
		monitor.NewRepo(a.db),
		a.escan,
		a.connector,
		monitor.NewNatsPublisher(a.natsConn, a.cfg.Nats.AlertsSubject),
		a.cfg.Monitor,
	)

	return nil
}

func (a *Application) initThreatIntel() error {
	a.threatService = threat.NewService(threat.NewRepo(a.db), threat.NewCache())
	if err := a.threatService.Warmup(a.cfg.Threat.DataDir); err != nil {
		log.Warn().Err(err).Str("dir", a.cfg.Threat.DataDir).Msg("threat intel warmup incomplete")
	}

	return nil
}

// initAI assembles the provider chain: Gemini first, OpenAI as fallback.
// With no keys configured the chain is empty and template narratives are used.
func (a *Application) initAI() {
	var providers []ai.Provider

	if a.cfg.AI.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiProvider(context.Background(), a.cfg.AI.GeminiAPIKey, a.cfg.AI.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("gemini provider unavailable")
		} else {
			providers = append(providers, gemini)
		}
	}

	if a.cfg.AI.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIProvider(a.cfg.AI.OpenAIAPIKey))
	}

	a.aiService = ai.NewService(providers...)
}

func (a *Application) initAPI() error {
	router := rest.NewRouter(
		analysis.NewServer(a.analysisService),
		advanced.NewServer(a.advancedService),
		contract.NewServer(a.contractService),
		threat.NewServer(a.threatService),
		defi.NewServer(a.defiService),
		casefile.NewServer(a.caseService),
		batch.NewServer(a.batchService),
		monitor.NewServer(a.monitorService),
		ai.NewServer(a.aiService, a.analysisService),
		report.NewServer(a.analysisService, a.aiService),
	)

	srv := rest.NewServer(a.cfg.API.Bind(), router)
	a.manager.AddWorker(process.NewServerWorker("API", srv))

	return nil
}

func (a *Application) initMonitoring() error {
	worker := monitor.NewWorker(a.monitorService, a.cfg.Monitor.CheckInterval)
	a.manager.AddWorker(process.NewCallbackWorker("monitoring", worker.Start))

	consumer := monitor.NewConsumer(a.natsConn, a.monitorService, a.cfg.Nats.AlertsSubject)
	a.manager.AddWorker(process.NewCallbackWorker("alerts-consumer", consumer.Start))

	return nil
}

func (a *Application) initPrometheusWorker() error {
	srv := prometheus.NewServer(a.cfg.Prometheus.Listen, "/metrics")
	a.manager.AddWorker(process.NewServerWorker("prometheus", srv))

	return nil
}

func (a *Application) initHealthWorker() error {
	srv := health.NewHealthCheckServer(a.cfg.Health.Listen, "/status", health.DefaultHandler(a.manager))
	a.manager.AddWorker(process.NewServerWorker("health", srv))

	return nil
}

func (a *Application) registerShutdown() {
	go func(manager *process.Manager) {
		<-a.sigChan

		manager.StopAll()
		a.batchService.StopPool()
		a.connector.Close()
		if a.natsConn != nil {
			a.natsConn.Close()
		}
	}(a.manager)

	a.manager.AwaitAll()
}
