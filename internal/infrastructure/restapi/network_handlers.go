package restapi

import (
	"net/http"
	"sort"

	"chain_stats/internal/app/port"

	"github.com/gin-gonic/gin"
)

// APINetwork describes one supported network.
type APINetwork struct {
	Name         string `json:"name"`
	ChainID      uint64 `json:"chainId"`
	NativeSymbol string `json:"nativeSymbol"`
	TokenCount   int    `json:"tokenCount"`
}

// APINetworksResponse is the body of GET /api/networks.
type APINetworksResponse struct {
	Networks []APINetwork `json:"networks"`
}

// NetworkHandler lists the networks the server can answer for.
type NetworkHandler struct {
	networkProvider port.NetworkDefinitionProvider
	tokenProvider   port.TokenProvider
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(np port.NetworkDefinitionProvider, tp port.TokenProvider) *NetworkHandler {
	return &NetworkHandler{networkProvider: np, tokenProvider: tp}
}

// GetNetworksHandler handles GET /api/networks.
func (h *NetworkHandler) GetNetworksHandler(c *gin.Context) {
	defs := h.networkProvider.GetAllNetworkDefinitions()
	response := APINetworksResponse{Networks: make([]APINetwork, 0, len(defs))}
	for _, def := range defs {
		response.Networks = append(response.Networks, APINetwork{
			Name:         def.Identifier,
			ChainID:      def.ChainID,
			NativeSymbol: def.NativeSymbol,
			TokenCount:   len(h.tokenProvider.GetTokenAddresses(def.Identifier)),
		})
	}
	sort.Slice(response.Networks, func(i, j int) bool {
		return response.Networks[i].Name < response.Networks[j].Name
	})
	c.JSON(http.StatusOK, response)
}
