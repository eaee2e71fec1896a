package service

import (
	"context"
	"fmt"
	"time"

	"chain_stats/internal/app/port"
	"chain_stats/internal/domain/entity"
	"chain_stats/internal/pkg/metrics"
	"chain_stats/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// StatsServiceImpl implements port.StatsService.
type StatsServiceImpl struct {
	networkProvider port.NetworkDefinitionProvider
	clientProvider  port.BlockchainClientProvider
	priceProvider   port.PriceProvider
	logger          port.Logger
}

// NewStatsService creates a new instance of StatsServiceImpl.
func NewStatsService(
	np port.NetworkDefinitionProvider,
	cp port.BlockchainClientProvider,
	pp port.PriceProvider,
	l port.Logger,
) port.StatsService {
	return &StatsServiceImpl{
		networkProvider: np,
		clientProvider:  cp,
		priceProvider:   pp,
		logger:          l,
	}
}

// GetChainStats fetches the latest block, fee data and native coin price of a chain
// concurrently. Any failed fetch fails the whole result.
func (s *StatsServiceImpl) GetChainStats(ctx context.Context, chainName string) (*entity.ChainStats, error) {
	netDef, ok := s.networkProvider.GetNetworkDefinitionByName(chainName)
	if !ok {
		s.logger.Debug("Stats requested for unsupported chain", "chain", chainName)
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedChain, chainName)
	}
	s.logger.Debug("Fetching chain stats", "network", netDef.Identifier)

	client, err := s.clientProvider.GetClient(ctx, netDef)
	if err != nil {
		s.logger.Error("Failed to get client for network", "network", netDef.Identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamFailure, err)
	}
	defer client.Close()

	var (
		block entity.BlockSummary
		fees  entity.FeeData
		price float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		block, err = client.LatestBlock(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch latest block: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fees, err = client.FeeData(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch fee data: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		price, err = s.priceProvider.GetUSDPrice(gctx, netDef.PriceFeedID)
		metrics.ObserveUpstream(metrics.UpstreamPrice, netDef.Identifier, start, err)
		if err != nil {
			return fmt.Errorf("failed to fetch price for %s: %w", netDef.PriceFeedID, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to fetch chain stats", "network", netDef.Identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamFailure, err)
	}

	stats := &entity.ChainStats{
		BlockNumber:      block.Number.String(),
		Timestamp:        block.Timestamp,
		TransactionCount: block.TransactionCount,
		GasPrice: entity.GasPriceTiers{
			Slow:    utils.FormatGwei(fees.GasPrice),
			Average: utils.FormatGwei(fees.MaxFeePerGas),
			Fast:    utils.FormatGwei(fees.MaxPriorityFeePerGas),
		},
		NativeCoinPriceUSD: utils.FormatPrice(price),
	}

	s.logger.Debug("Chain stats fetched", "network", netDef.Identifier, "block", stats.BlockNumber)
	return stats, nil
}
