package defi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/openchain-labs/openchain-ir/pkg/sdk/thegraph"
)

// CurveEvent is one recorded liquidity event in a Curve pool.
type CurveEvent struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	PoolName  string `json:"pool_name"`
}

// CurvePoolActivity lists recent liquidity events for a Curve pool.
func (s *Service) CurvePoolActivity(ctx context.Context, poolAddress string) ([]CurveEvent, error) {
	query := fmt.Sprintf(`{
  liquidityEvents(first: 100, orderBy: timestamp, orderDirection: desc, where: { pool: %q }) {
    id
    timestamp
    pool { name }
  }
}`, poolAddress)

	var data thegraph.CurveData
	if err := s.graph.Query(ctx, s.cfg.CurveGraphURL, query, &data); err != nil {
		return nil, fmt.Errorf("query curve events: %w", err)
	}

	events := make([]CurveEvent, 0, len(data.LiquidityEvents))
	for _, raw := range data.LiquidityEvents {
		ts, _ := strconv.ParseInt(raw.Timestamp, 10, 64)
		events = append(events, CurveEvent{
			ID:        raw.ID,
			Timestamp: ts,
			PoolName:  raw.Pool.Name,
		})
	}

	return events, nil
}
