package thegraph

// Uniswap V3 subgraph payloads.
type (
	UniswapSwap struct {
		ID        string `json:"id"`
		Timestamp string `json:"timestamp"`
		Origin    string `json:"origin"`
		Amount0   string `json:"amount0"`
		Amount1   string `json:"amount1"`
		AmountUSD string `json:"amountUSD"`
		Token0    Token  `json:"token0"`
		Token1    Token  `json:"token1"`
		Pool      Pool   `json:"pool"`
	}

	UniswapPosition struct {
		ID                  string `json:"id"`
		Owner               string `json:"owner"`
		Liquidity           string `json:"liquidity"`
		TickLower           string `json:"tickLower"`
		TickUpper           string `json:"tickUpper"`
		DepositedToken0     string `json:"depositedToken0"`
		DepositedToken1     string `json:"depositedToken1"`
		CollectedFeesToken0 string `json:"collectedFeesToken0"`
		CollectedFeesToken1 string `json:"collectedFeesToken1"`
		Pool                Pool   `json:"pool"`
	}

	Token struct {
		Symbol string `json:"symbol"`
	}

	Pool struct {
		ID      string `json:"id"`
		FeeTier string `json:"feeTier"`
		Token0  Token  `json:"token0"`
		Token1  Token  `json:"token1"`
	}

	SwapsData struct {
		Swaps []UniswapSwap `json:"swaps"`
	}

	PositionsData struct {
		Positions []UniswapPosition `json:"positions"`
	}
)

// Aave V3 subgraph payloads.
type (
	AaveUserReserve struct {
		CurrentATokenBalance string `json:"currentATokenBalance"`
		CurrentTotalDebt     string `json:"currentTotalDebt"`
		Reserve              struct {
			Symbol string `json:"symbol"`
		} `json:"reserve"`
	}

	AaveUserData struct {
		UserReserves []AaveUserReserve `json:"userReserves"`
	}
)

// Curve pool subgraph payloads.
type (
	CurveEvent struct {
		ID        string `json:"id"`
		Timestamp string `json:"timestamp"`
		Pool      struct {
			Name string `json:"name"`
		} `json:"pool"`
	}

	CurveData struct {
		LiquidityEvents []CurveEvent `json:"liquidityEvents"`
	}
)
