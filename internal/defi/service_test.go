package defi

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openchain-labs/openchain-ir/internal/config"
)

// fakeGraph serves canned responses keyed by a query fragment.
type fakeGraph struct {
	responses map[string]string
}

func (f *fakeGraph) Query(_ context.Context, _, query string, out any) error {
	for fragment, payload := range f.responses {
		if strings.Contains(query, fragment) {
			return json.Unmarshal([]byte(payload), out)
		}
	}

	return json.Unmarshal([]byte(`{}`), out)
}

func testConfig() config.DeFi {
	return config.DeFi{
		UniswapGraphURL: "http://uniswap.test",
		AaveGraphURL:    "http://aave.test",
		CurveGraphURL:   "http://curve.test",
	}
}

func TestUnitAnalyze(t *testing.T) {
	graph := &fakeGraph{responses: map[string]string{
		"swaps(": `{"swaps": [{
			"id": "0xhash-1",
			"timestamp": "1760000000",
			"origin": "0xabc",
			"amount0": "1.5",
			"amount1": "-3000",
			"amountUSD": "3000",
			"token0": {"symbol": "WETH"},
			"token1": {"symbol": "USDC"},
			"pool": {"id": "0xpool", "feeTier": "3000"}
		}]}`,
		"positions(": `{"positions": [{
			"id": "42",
			"owner": "0xabc",
			"liquidity": "1000",
			"tickLower": "-100",
			"tickUpper": "100",
			"depositedToken0": "10",
			"depositedToken1": "10",
			"collectedFeesToken0": "1",
			"collectedFeesToken1": "0",
			"pool": {"id": "0xpool", "feeTier": "3000", "token0": {"symbol": "WETH"}, "token1": {"symbol": "USDC"}}
		}]}`,
		"userReserves(": `{"userReserves": [
			{"currentATokenBalance": "500", "currentTotalDebt": "0", "reserve": {"symbol": "DAI"}},
			{"currentATokenBalance": "0", "currentTotalDebt": "100", "reserve": {"symbol": "USDC"}}
		]}`,
	}}

	service := NewService(graph, nil, testConfig())

	activity, err := service.Analyze(context.Background(), "0xABC")
	require.NoError(t, err)

	assert.Equal(t, "0xabc", activity.Address)

	require.Len(t, activity.Swaps, 1)
	assert.Equal(t, "0xhash", activity.Swaps[0].TxHash)
	assert.Equal(t, "WETH", activity.Swaps[0].TokenIn)

	require.Len(t, activity.Positions, 1)
	assert.EqualValues(t, -100, activity.Positions[0].TickLower)

	require.NotNil(t, activity.Aave)
	assert.Equal(t, "lender_borrower", activity.Aave.ActivityType)

	require.Len(t, activity.YieldFarms, 1)
	require.NotNil(t, activity.YieldFarms[0].APYEstimate)
	assert.InDelta(t, 5.0, *activity.YieldFarms[0].APYEstimate, 1e-9)

	assert.ElementsMatch(t, []string{"Uniswap V3", "Aave"}, activity.Summary.ProtocolsUsed)
	assert.True(t, activity.Summary.IsTrader)
	assert.True(t, activity.Summary.IsLP)
	assert.Equal(t, "LOW", activity.Summary.RiskAssessment)
}

func TestUnitAnalyzeDegradesWhenSubgraphFails(t *testing.T) {
	graph := &fakeGraph{responses: map[string]string{}}
	service := NewService(graph, nil, testConfig())

	activity, err := service.Analyze(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Empty(t, activity.Swaps)
	assert.Nil(t, activity.Aave)
	assert.False(t, activity.Summary.IsTrader)
	assert.Equal(t, "LOW", activity.Summary.RiskAssessment)
}
