package client

import (
	"context"
	"fmt"
	"time"

	"chain_stats/internal/app/port"
	"chain_stats/internal/domain/entity"
	"chain_stats/internal/infrastructure/configloader"

	"go.uber.org/zap"
)

// evmClientProvider implements the port.BlockchainClientProvider interface.
// Every call returns a new client; the caller owns it and must Close it.
type evmClientProvider struct {
	logger         *zap.Logger
	rpcCallTimeout time.Duration
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(cfg *configloader.Config, logger *zap.Logger) port.BlockchainClientProvider {
	return &evmClientProvider{
		logger:         logger.Named("EVMClientProvider"),
		rpcCallTimeout: time.Duration(cfg.RPCClient.CallTimeoutSeconds) * time.Second,
	}
}

// GetClient creates a blockchain client for the given network definition.
func (p *evmClientProvider) GetClient(ctx context.Context, netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.logger.Debug("Creating EVM client", zap.String("network", netDef.Identifier), zap.String("rpc", netDef.RPCURL))

	newClient, err := NewEVMClient(ctx, netDef, p.rpcCallTimeout)
	if err != nil {
		p.logger.Error("Failed to create EVM client", zap.String("network", netDef.Identifier), zap.Error(err))
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Identifier, err)
	}
	return newClient, nil
}
