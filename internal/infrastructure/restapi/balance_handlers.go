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

const invalidBalanceRequestMessage = "Invalid network or address."

// BalanceHandler serves the wallet balance endpoint.
type BalanceHandler struct {
	balanceService port.BalanceService
	logger         *zap.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(bs port.BalanceService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: bs,
		logger:         logger.Named("BalanceHandler"),
	}
}

// GetWalletBalancesHandler handles GET /api/balances/:chainName/:walletAddress.
func (h *BalanceHandler) GetWalletBalancesHandler(c *gin.Context) {
	chainName := c.Param("chainName")
	walletAddress := c.Param("walletAddress")

	balances, err := h.balanceService.GetWalletBalances(c.Request.Context(), chainName, walletAddress)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUnsupportedChain), errors.Is(err, entity.ErrInvalidAddress):
			h.logger.Debug("Rejected balance request", zap.String("chain", chainName), zap.Error(err))
			c.JSON(http.StatusBadRequest, APIErrorResponse{Error: invalidBalanceRequestMessage})
		default:
			h.logger.Error("Failed to fetch wallet balances", zap.String("chain", chainName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, APIErrorResponse{
				Error: fmt.Sprintf("Failed to fetch balances for network '%s'.", chainName),
			})
		}
		return
	}
	c.JSON(http.StatusOK, balances)
}
