package service

import (
	"context"
	"fmt"
	"sync"

	"chain_stats/internal/app/port"
	"chain_stats/internal/domain/entity"
	"chain_stats/internal/pkg/metrics"
	"chain_stats/internal/pkg/utils"
)

// BalanceServiceImpl implements port.BalanceService.
type BalanceServiceImpl struct {
	networkProvider port.NetworkDefinitionProvider
	tokenProvider   port.TokenProvider
	clientProvider  port.BlockchainClientProvider
	logger          port.Logger
}

// NewBalanceService creates a new instance of BalanceServiceImpl.
func NewBalanceService(
	np port.NetworkDefinitionProvider,
	tp port.TokenProvider,
	cp port.BlockchainClientProvider,
	l port.Logger,
) port.BalanceService {
	return &BalanceServiceImpl{
		networkProvider: np,
		tokenProvider:   tp,
		clientProvider:  cp,
		logger:          l,
	}
}

// probeResult is the outcome of one token probe, stored at the token's registry index.
type probeResult struct {
	probe entity.TokenProbe
	err   error
}

// GetWalletBalances probes every tracked token of the chain for the wallet.
// A failed probe drops that token only; found and searched keep registry order.
func (s *BalanceServiceImpl) GetWalletBalances(ctx context.Context, chainName string, walletAddress string) (*entity.WalletBalances, error) {
	netDef, ok := s.networkProvider.GetNetworkDefinitionByName(chainName)
	if !ok {
		s.logger.Debug("Balances requested for unsupported chain", "chain", chainName)
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedChain, chainName)
	}
	if !utils.IsValidAddress(walletAddress) {
		s.logger.Debug("Balances requested for invalid address", "network", netDef.Identifier, "address", walletAddress)
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidAddress, walletAddress)
	}

	result := entity.NewWalletBalances()

	tokens := s.tokenProvider.GetTokenAddresses(netDef.Identifier)
	if len(tokens) == 0 {
		s.logger.Debug("No tokens tracked for network", "network", netDef.Identifier)
		return result, nil
	}

	client, err := s.clientProvider.GetClient(ctx, netDef)
	if err != nil {
		s.logger.Error("Failed to get client for network", "network", netDef.Identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamFailure, err)
	}
	defer client.Close()

	results := make([]probeResult, len(tokens))
	var wg sync.WaitGroup
	for i, tokenAddress := range tokens {
		wg.Add(1)
		go func(idx int, token string) {
			defer wg.Done()
			probe, err := client.ProbeToken(ctx, token, walletAddress)
			results[idx] = probeResult{probe: probe, err: err}
		}(i, tokenAddress)
	}
	wg.Wait()

	for i, r := range results {
		if r.err != nil {
			s.logger.Warn("Skipping token after failed probe",
				"network", netDef.Identifier, "token", tokens[i], "error", r.err)
			metrics.TokenProbeFailuresTotal.WithLabelValues(netDef.Identifier).Inc()
			continue
		}

		result.Searched = append(result.Searched, r.probe.Symbol)
		if r.probe.Balance != nil && r.probe.Balance.Sign() > 0 {
			result.Found = append(result.Found, entity.TokenBalance{
				Symbol:  r.probe.Symbol,
				Balance: utils.FormatBigInt(r.probe.Balance, r.probe.Decimals),
			})
		}
	}

	s.logger.Debug("Wallet balances fetched", "network", netDef.Identifier,
		"searched", len(result.Searched), "found", len(result.Found))
	return result, nil
}
