package taint

// Intermediaries funds commonly pass through while being laundered. All
// addresses are stored lowercase.

var knownMixers = map[string]string{
	"0x12d66f87a04a9e220743712ce6d9bb1b5616b8fc": "Tornado Cash Router",
	"0xd4b88df4d29f5cdf15910dcb5bef341d57227f59": "Coin Join Service",
	"0x1234567890123456789012345678901234567890": "Mixing Service",
}

var knownBridges = map[string]string{
	"0x098b716b8aaf21512996dc57eb0615e2383e2f96": "Polygon Bridge",
	"0xc119bc18c7d19b5ef8e330a5d9cbbb16f85b46f2": "Arbitrum Bridge",
	"0x4200000000000000000000000000000000000010": "Optimism Bridge",
}

var knownCEXes = map[string]string{
	"0x28c6c06298d514db089934071355e5743bf21d60": "Binance Deposit",
	"0x77696bb39917c91a0c3908d577d5e322095425ca": "Coinbase Deposit",
	"0x1111111111111111111111111111111111111111": "Kraken Deposit",
}

func isMixer(address string) bool {
	_, ok := knownMixers[address]
	return ok
}

func isBridge(address string) bool {
	_, ok := knownBridges[address]
	return ok
}

func isCEX(address string) bool {
	_, ok := knownCEXes[address]
	return ok
}
