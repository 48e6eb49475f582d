package etherscan

import (
	"fmt"
	"sort"
	"strings"
)

// ChainID identifies an EVM network served by the Etherscan V2 endpoint.
type ChainID int64

const (
	ChainEthereum  ChainID = 1
	ChainOptimism  ChainID = 10
	ChainCronos    ChainID = 25
	ChainBSC       ChainID = 56
	ChainGnosis    ChainID = 100
	ChainPolygon   ChainID = 137
	ChainFantom    ChainID = 250
	ChainMoonbeam  ChainID = 1284
	ChainBase      ChainID = 8453
	ChainArbitrum  ChainID = 42161
	ChainCelo      ChainID = 42220
	ChainAvalanche ChainID = 43114
	ChainLinea     ChainID = 59144
	ChainBlast     ChainID = 81457
	ChainSepolia   ChainID = 11155111

	maxChainID = int64(ChainSepolia)
)

var chainsByName = map[string]ChainID{
	"ethereum":  ChainEthereum,
	"bsc":       ChainBSC,
	"polygon":   ChainPolygon,
	"optimism":  ChainOptimism,
	"arbitrum":  ChainArbitrum,
	"base":      ChainBase,
	"avalanche": ChainAvalanche,
	"fantom":    ChainFantom,
	"cronos":    ChainCronos,
	"moonbeam":  ChainMoonbeam,
	"gnosis":    ChainGnosis,
	"celo":      ChainCelo,
	"blast":     ChainBlast,
	"linea":     ChainLinea,
	"sepolia":   ChainSepolia,
}

// ChainByName resolves a human-readable chain name to its chain ID.
func ChainByName(name string) (ChainID, error) {
	id, ok := chainsByName[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unsupported chain name: %s", name)
	}

	return id, nil
}

// ChainName returns the registered name for the given chain ID.
func ChainName(id ChainID) string {
	for name, cid := range chainsByName {
		if cid == id {
			return name
		}
	}

	return fmt.Sprintf("chain-%d", id)
}

// SupportedChains returns registered chain names mapped to chain IDs.
func SupportedChains() map[string]ChainID {
	out := make(map[string]ChainID, len(chainsByName))
	for name, id := range chainsByName {
		out[name] = id
	}

	return out
}

// SupportedChainNames returns all chain names in deterministic order.
func SupportedChainNames() []string {
	names := make([]string, 0, len(chainsByName))
	for name := range chainsByName {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Validate checks that the chain ID falls inside the supported range.
func (c ChainID) Validate() error {
	if int64(c) < 1 || int64(c) > maxChainID {
		return fmt.Errorf("chain id %d out of supported range", c)
	}

	return nil
}
