package config

type Chain struct {
	RPCURL string `env:"ETHEREUM_RPC_URL" envDefault:""`
}
