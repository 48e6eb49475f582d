package config

import "time"

type Monitor struct {
	CheckInterval time.Duration `env:"MONITORING_UPDATE_INTERVAL" envDefault:"60s"`
	MaxAddresses  int           `env:"MONITORING_MAX_ADDRESSES" envDefault:"10"`
}
