package config

type DeFi struct {
	UniswapGraphURL string `env:"UNISWAP_GRAPH_URL" envDefault:"https://api.thegraph.com/subgraphs/name/uniswap/uniswap-v3"`
	AaveGraphURL    string `env:"AAVE_GRAPH_URL" envDefault:"https://api.thegraph.com/subgraphs/name/aave/protocol-v3"`
	CurveGraphURL   string `env:"CURVE_GRAPH_URL" envDefault:"https://api.thegraph.com/subgraphs/name/convex-community/curve-pools"`
}
