package defi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/openchain-labs/openchain-ir/internal/config"
	"github.com/openchain-labs/openchain-ir/pkg/sdk/thegraph"
)

const swapsLimit = 100

// GraphQuerier posts GraphQL queries to a subgraph endpoint.
type GraphQuerier interface {
	Query(ctx context.Context, endpoint, query string, out any) error
}

type Service struct {
	graph GraphQuerier
	repo  *Repo
	cfg   config.DeFi
}

// NewService builds the analyzer. A nil repo disables persistence.
func NewService(graph GraphQuerier, repo *Repo, cfg config.DeFi) *Service {
	return &Service{
		graph: graph,
		repo:  repo,
		cfg:   cfg,
	}
}

// Analyze queries all supported protocols in parallel and rolls the results
// into one activity report. A failing subgraph degrades the report instead
// of failing it.
func (s *Service) Analyze(ctx context.Context, address string) (*Activity, error) {
	address = strings.ToLower(address)

	var (
		swaps     []Swap
		positions []Position
		aave      *AaveActivity
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		swaps, err = s.UniswapSwaps(groupCtx, address)
		if err != nil {
			log.Warn().Err(err).Str("address", address).Msg("uniswap swaps unavailable")
		}

		return nil
	})

	group.Go(func() error {
		var err error
		positions, err = s.UniswapPositions(groupCtx, address)
		if err != nil {
			log.Warn().Err(err).Str("address", address).Msg("uniswap positions unavailable")
		}

		return nil
	})

	group.Go(func() error {
		var err error
		aave, err = s.AaveActivity(groupCtx, address)
		if err != nil {
			log.Warn().Err(err).Str("address", address).Msg("aave data unavailable")
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	activity := &Activity{
		Address:    address,
		Swaps:      swaps,
		Positions:  positions,
		Aave:       aave,
		YieldFarms: yieldFarms(positions),
		AnalyzedAt: time.Now().UTC(),
	}
	activity.Summary = summarize(activity)

	if s.repo != nil {
		record, err := buildRecord(activity)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(record); err != nil {
			return nil, fmt.Errorf("store defi activity: %w", err)
		}
	}

	return activity, nil
}

// History lists previously stored analysis runs for the address.
func (s *Service) History(address string, limit int) ([]Record, error) {
	if s.repo == nil {
		return nil, nil
	}

	return s.repo.GetByAddress(address, limit)
}

// UniswapSwaps lists recent swaps originated by the address.
func (s *Service) UniswapSwaps(ctx context.Context, address string) ([]Swap, error) {
	query := fmt.Sprintf(`{
  swaps(first: %d, where: { origin: %q }, orderBy: timestamp, orderDirection: desc) {
    id
    timestamp
    origin
    amount0
    amount1
    amountUSD
    token0 { symbol }
    token1 { symbol }
    pool { id feeTier }
  }
}`, swapsLimit, address)

	var data thegraph.SwapsData
	if err := s.graph.Query(ctx, s.cfg.UniswapGraphURL, query, &data); err != nil {
		return nil, fmt.Errorf("query uniswap swaps: %w", err)
	}

	swaps := make([]Swap, 0, len(data.Swaps))
	for _, raw := range data.Swaps {
		swaps = append(swaps, parseSwap(raw))
	}

	return swaps, nil
}

// UniswapPositions lists active liquidity positions owned by the address.
func (s *Service) UniswapPositions(ctx context.Context, address string) ([]Position, error) {
	query := fmt.Sprintf(`{
  positions(first: 100, where: { owner: %q, liquidity_gt: "0" }) {
    id
    owner
    liquidity
    tickLower
    tickUpper
    depositedToken0
    depositedToken1
    collectedFeesToken0
    collectedFeesToken1
    pool { id feeTier token0 { symbol } token1 { symbol } }
  }
}`, address)

	var data thegraph.PositionsData
	if err := s.graph.Query(ctx, s.cfg.UniswapGraphURL, query, &data); err != nil {
		return nil, fmt.Errorf("query uniswap positions: %w", err)
	}

	positions := make([]Position, 0, len(data.Positions))
	for _, raw := range data.Positions {
		positions = append(positions, parsePosition(raw))
	}

	return positions, nil
}

// AaveActivity returns the address's supply and borrow reserves, nil when the
// address never touched the protocol.
func (s *Service) AaveActivity(ctx context.Context, address string) (*AaveActivity, error) {
	query := fmt.Sprintf(`{
  userReserves(where: { user: %q }) {
    currentATokenBalance
    currentTotalDebt
    reserve { symbol }
  }
}`, address)

	var data thegraph.AaveUserData
	if err := s.graph.Query(ctx, s.cfg.AaveGraphURL, query, &data); err != nil {
		return nil, fmt.Errorf("query aave reserves: %w", err)
	}

	if len(data.UserReserves) == 0 {
		return nil, nil
	}

	activity := &AaveActivity{
		Type:    "aave_user",
		Address: address,
	}

	for _, reserve := range data.UserReserves {
		if supplied := parseFloat(reserve.CurrentATokenBalance); supplied > 0 {
			activity.Supplies = append(activity.Supplies, LendingPosition{
				Token:  reserve.Reserve.Symbol,
				Amount: supplied,
			})
		}
		if borrowed := parseFloat(reserve.CurrentTotalDebt); borrowed > 0 {
			activity.Borrows = append(activity.Borrows, LendingPosition{
				Token:  reserve.Reserve.Symbol,
				Amount: borrowed,
			})
		}
	}

	switch {
	case len(activity.Supplies) > 0 && len(activity.Borrows) > 0:
		activity.ActivityType = "lender_borrower"
	case len(activity.Supplies) > 0:
		activity.ActivityType = "lender"
	case len(activity.Borrows) > 0:
		activity.ActivityType = "borrower"
	default:
		activity.ActivityType = "inactive"
	}

	return activity, nil
}

func parseSwap(raw thegraph.UniswapSwap) Swap {
	txHash := raw.ID
	if idx := strings.Index(txHash, "-"); idx > 0 {
		txHash = txHash[:idx]
	}

	ts, _ := strconv.ParseInt(raw.Timestamp, 10, 64)

	return Swap{
		Type:      "uniswap_swap",
		TxHash:    txHash,
		Timestamp: ts,
		Address:   raw.Origin,
		TokenIn:   raw.Token0.Symbol,
		AmountIn:  parseFloat(raw.Amount0),
		TokenOut:  raw.Token1.Symbol,
		AmountOut: parseFloat(raw.Amount1),
		USDValue:  parseFloat(raw.AmountUSD),
		Pool:      raw.Pool.ID,
		FeeTier:   raw.Pool.FeeTier,
	}
}

func parsePosition(raw thegraph.UniswapPosition) Position {
	tickLower, _ := strconv.ParseInt(raw.TickLower, 10, 64)
	tickUpper, _ := strconv.ParseInt(raw.TickUpper, 10, 64)

	return Position{
		Type:            "uniswap_lp",
		PositionID:      raw.ID,
		Owner:           raw.Owner,
		Pool:            raw.Pool.ID,
		Token0:          raw.Pool.Token0.Symbol,
		Token1:          raw.Pool.Token1.Symbol,
		FeeTier:         raw.Pool.FeeTier,
		Liquidity:       parseFloat(raw.Liquidity),
		TickLower:       tickLower,
		TickUpper:       tickUpper,
		DepositedToken0: parseFloat(raw.DepositedToken0),
		DepositedToken1: parseFloat(raw.DepositedToken1),
		FeesCollected0:  parseFloat(raw.CollectedFeesToken0),
		FeesCollected1:  parseFloat(raw.CollectedFeesToken1),
	}
}

// yieldFarms picks out positions that are actively earning fees.
func yieldFarms(positions []Position) []YieldFarm {
	var farms []YieldFarm
	for _, pos := range positions {
		if pos.FeesCollected0 <= 0 && pos.FeesCollected1 <= 0 {
			continue
		}

		farms = append(farms, YieldFarm{
			Type:        "uniswap_yield",
			PositionID:  pos.PositionID,
			Tokens:      pos.Token0 + "/" + pos.Token1,
			FeesEarned0: pos.FeesCollected0,
			FeesEarned1: pos.FeesCollected1,
			APYEstimate: estimateAPY(pos),
		})
	}

	return farms
}

// estimateAPY is a rough fees-over-deposits ratio, nil when nothing was
// deposited.
func estimateAPY(pos Position) *float64 {
	deposited := pos.DepositedToken0 + pos.DepositedToken1
	if deposited <= 0 {
		return nil
	}

	apy := (pos.FeesCollected0 + pos.FeesCollected1) / deposited * 100

	return &apy
}

func summarize(activity *Activity) ActivitySummary {
	summary := ActivitySummary{
		TotalSwaps:        len(activity.Swaps),
		ActiveLPPositions: len(activity.Positions),
		IsTrader:          len(activity.Swaps) > 0,
		IsLP:              len(activity.Positions) > 0,
	}

	if summary.IsTrader || summary.IsLP {
		summary.ProtocolsUsed = append(summary.ProtocolsUsed, "Uniswap V3")
	}
	if activity.Aave != nil {
		summary.ProtocolsUsed = append(summary.ProtocolsUsed, "Aave")
		summary.LendingActivity = true
		summary.BorrowedAssets = len(activity.Aave.Borrows)
	}

	summary.RiskAssessment = riskLevel(assessRisk(summary))

	return summary
}

func assessRisk(summary ActivitySummary) int {
	risk := 0
	if summary.TotalSwaps > 100 {
		risk += 10
	}
	if summary.BorrowedAssets > 5 {
		risk += 15
	}
	for _, protocol := range summary.ProtocolsUsed {
		if protocol == "Aave" {
			risk -= 5
		}
	}

	if risk < 0 {
		risk = 0
	}
	if risk > 100 {
		risk = 100
	}

	return risk
}

func riskLevel(score int) string {
	switch {
	case score >= 75:
		return "HIGH"
	case score >= 50:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func parseFloat(raw string) float64 {
	val, _ := strconv.ParseFloat(raw, 64)
	return val
}
