package port

import (
	"context"

	"chain_stats/internal/domain/entity"
)

// BlockchainClient defines the interface for interacting with an EVM-compatible network.
type BlockchainClient interface {
	// LatestBlock fetches the number, timestamp and transaction count of the latest block.
	LatestBlock(ctx context.Context) (entity.BlockSummary, error)

	// FeeData fetches the current gas price together with the EIP-1559 fee estimate.
	FeeData(ctx context.Context) (entity.FeeData, error)

	// ProbeToken reads symbol, decimals and the wallet balance from an ERC-20 contract.
	// An error means at least one of the three reads failed.
	ProbeToken(ctx context.Context, tokenAddress string, walletAddress string) (entity.TokenProbe, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition

	// Close releases the underlying RPC connection.
	Close()
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all available network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific network definition by its identifier.
	// Lookup ignores letter case.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
}

// BlockchainClientProvider defines the interface for providing blockchain clients.
type BlockchainClientProvider interface {
	GetClient(ctx context.Context, networkDefinition entity.NetworkDefinition) (BlockchainClient, error)
}
