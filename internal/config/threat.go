package config

type Threat struct {
	DataDir string `env:"THREAT_INTEL_DIR" envDefault:"data/threat_intel"`
}
