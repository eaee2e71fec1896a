package provider

import (
	"chain_stats/internal/app/port"
	"chain_stats/internal/pkg/utils"
)

type tokenProviderImpl struct {
	tokensByNetwork map[string][]string // Key: network identifier
	logger          port.Logger
}

// NewTokenProvider builds the token registry from the active network definitions.
// Invalid and duplicate addresses are dropped with a warning.
func NewTokenProvider(np port.NetworkDefinitionProvider, logger port.Logger) port.TokenProvider {
	p := &tokenProviderImpl{
		tokensByNetwork: make(map[string][]string),
		logger:          logger,
	}

	for _, netDef := range np.GetAllNetworkDefinitions() {
		seen := make(map[string]struct{}, len(netDef.TokenAddresses))
		valid := make([]string, 0, len(netDef.TokenAddresses))
		for _, address := range netDef.TokenAddresses {
			if !utils.IsValidAddress(address) {
				logger.Warn("Dropping invalid token address", "network", netDef.Identifier, "address", address)
				continue
			}
			key := utils.NormalizeAddress(address)
			if _, dup := seen[key]; dup {
				logger.Warn("Dropping duplicate token address", "network", netDef.Identifier, "address", address)
				continue
			}
			seen[key] = struct{}{}
			valid = append(valid, address)
		}
		p.tokensByNetwork[netDef.Identifier] = valid
		logger.Debug("Tokens registered for network", "network", netDef.Identifier, "count", len(valid))
	}

	return p
}

// GetTokenAddresses returns a copy of the token list of the network, empty if none is tracked.
func (p *tokenProviderImpl) GetTokenAddresses(networkIdentifier string) []string {
	return append([]string{}, p.tokensByNetwork[networkIdentifier]...)
}
