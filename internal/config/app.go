package config

type App struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Environment string `env:"ENVIRONMENT" envDefault:"production"`
	SentryDSN   string `env:"SENTRY_DSN" envDefault:""`

	DB         DB
	API        API
	Etherscan  Etherscan
	AI         AI
	Nats       Nats
	Monitor    Monitor
	Threat     Threat
	DeFi       DeFi
	Chain      Chain
	Prometheus Prometheus
	Health     Health
	Vault      Vault
}
