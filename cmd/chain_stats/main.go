package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chain_stats/internal/app/provider"
	"chain_stats/internal/app/service"
	"chain_stats/internal/client"
	"chain_stats/internal/infrastructure/configloader"
	clientprovider "chain_stats/internal/infrastructure/network/client"
	networkdefinition "chain_stats/internal/infrastructure/network/definition"
	"chain_stats/internal/infrastructure/restapi"
	"chain_stats/internal/pkg/logger"
	"chain_stats/internal/pkg/metrics"
	"chain_stats/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	// Load configuration; the loader reports defaults through logrus before zap exists
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	defer zapLogger.Sync() // flushes buffer, if any
	logger.InitSlog(zapLogger)
	appLogger := logger.NewSlogAdapter()

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	// Initialize Prometheus metrics
	metrics.MustRegisterMetrics()

	networkProvider, err := networkdefinition.NewNetworkDefinitionProvider(cfg, appLogger)
	if err != nil {
		zapLogger.Fatal("Failed to build network registry", zap.Error(err))
	}
	tokenProvider := provider.NewTokenProvider(networkProvider, appLogger)
	clientProvider := clientprovider.NewEVMClientProvider(cfg, zapLogger)

	coinGeckoClient := client.NewCoinGeckoClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		cfg.CoinGecko.ProAPI,
		cfg.CoinGecko.VsCurrency,
		time.Duration(cfg.CoinGecko.ClientTimeoutSeconds)*time.Second,
		zapLogger,
	)
	zapLogger.Info("CoinGecko client initialized", zap.String("baseURL", cfg.CoinGecko.BaseURL))

	statsService := service.NewStatsService(networkProvider, clientProvider, coinGeckoClient, appLogger)
	balanceService := service.NewBalanceService(networkProvider, tokenProvider, clientProvider, appLogger)

	gin.SetMode(gin.ReleaseMode)
	router := restapi.SetupRouter(
		restapi.NewStatsHandler(statsService, cfg.Server.DefaultChain, zapLogger),
		restapi.NewBalanceHandler(balanceService, zapLogger),
		restapi.NewNetworkHandler(networkProvider, tokenProvider),
		zapLogger,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
