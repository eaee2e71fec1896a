package port

import (
	"context"

	"chain_stats/internal/domain/entity"
)

// StatsService aggregates the live statistics of a single chain.
type StatsService interface {
	GetChainStats(ctx context.Context, chainName string) (*entity.ChainStats, error)
}
