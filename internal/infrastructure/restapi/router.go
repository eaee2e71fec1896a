package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter wires the middleware and all routes into a new gin engine.
func SetupRouter(statsHandler *StatsHandler, balanceHandler *BalanceHandler, networkHandler *NetworkHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(logger.Named("http")))
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/stats", statsHandler.GetDefaultChainStatsHandler)
		api.GET("/stats/:chainName", statsHandler.GetChainStatsHandler)
		api.GET("/balances/:chainName/:walletAddress", balanceHandler.GetWalletBalancesHandler)
		api.GET("/networks", networkHandler.GetNetworksHandler)
	}

	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
