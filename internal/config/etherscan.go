package config

type Etherscan struct {
	Endpoint string `env:"ETHERSCAN_API_URL" envDefault:"https://api.etherscan.io/v2/api"`
	APIKey   string `env:"ETHERSCAN_API_KEY"`
}
