package restapi

import (
	"errors"
	"fmt"
	"net/http"

	"chain_stats/internal/app/port"
	"chain_stats/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsHandler serves the chain statistics endpoints.
type StatsHandler struct {
	statsService port.StatsService
	defaultChain string
	logger       *zap.Logger
}

// NewStatsHandler creates a new StatsHandler. defaultChain is served by the route without a chain name.
func NewStatsHandler(ss port.StatsService, defaultChain string, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: ss,
		defaultChain: defaultChain,
		logger:       logger.Named("StatsHandler"),
	}
}

// GetChainStatsHandler handles GET /api/stats/:chainName.
func (h *StatsHandler) GetChainStatsHandler(c *gin.Context) {
	h.respond(c, c.Param("chainName"))
}

// GetDefaultChainStatsHandler handles GET /api/stats.
func (h *StatsHandler) GetDefaultChainStatsHandler(c *gin.Context) {
	h.respond(c, h.defaultChain)
}

func (h *StatsHandler) respond(c *gin.Context, chainName string) {
	stats, err := h.statsService.GetChainStats(c.Request.Context(), chainName)
	if err != nil {
		if errors.Is(err, entity.ErrUnsupportedChain) {
			c.JSON(http.StatusBadRequest, APIErrorResponse{
				Error: fmt.Sprintf("Network '%s' is not supported.", chainName),
			})
			return
		}
		h.logger.Error("Failed to fetch chain stats", zap.String("chain", chainName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, APIErrorResponse{
			Error: fmt.Sprintf("Failed to fetch data for network '%s'.", chainName),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}
