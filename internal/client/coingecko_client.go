package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"chain_stats/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	demoAPIKeyHeader = "x-cg-demo-api-key"
	proAPIKeyHeader  = "x-cg-pro-api-key"
)

// CoinGeckoClient resolves coin prices through the CoinGecko simple price API.
// It implements port.PriceProvider.
type CoinGeckoClient struct {
	client     *fasthttp.Client
	baseURL    string
	apiKey     string
	proAPI     bool
	vsCurrency string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewCoinGeckoClient creates a new instance of CoinGeckoClient.
func NewCoinGeckoClient(baseURL, apiKey string, proAPI bool, vsCurrency string, timeout time.Duration, logger *zap.Logger) *CoinGeckoClient {
	return &CoinGeckoClient{
		client:     &fasthttp.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		proAPI:     proAPI,
		vsCurrency: strings.ToLower(vsCurrency),
		timeout:    timeout,
		logger:     logger.Named("CoinGeckoClient"),
	}
}

// GetUSDPrice returns the price of coinID in the configured quote currency.
// A coin id missing from the response is an error.
func (c *CoinGeckoClient) GetUSDPrice(ctx context.Context, coinID string) (float64, error) {
	query := url.Values{}
	query.Set("ids", coinID)
	query.Set("vs_currencies", c.vsCurrency)
	requestURL := fmt.Sprintf("%s/simple/price?%s", c.baseURL, query.Encode())

	c.logger.Debug("Requesting price from CoinGecko", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		if c.proAPI {
			req.Header.Set(proAPIKeyHeader, c.apiKey)
		} else {
			req.Header.Set(demoAPIKeyHeader, c.apiKey)
		}
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return 0, fmt.Errorf("CoinGecko API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var prices entity.SimplePriceResponse
	if err := json.Unmarshal(rawBody, &prices); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to unmarshal CoinGecko response from %s: %w", requestURL, err)
	}

	quote, ok := prices[coinID][c.vsCurrency]
	if !ok {
		c.logger.Warn("CoinGecko response has no price for coin",
			zap.String("coinID", coinID),
			zap.String("vsCurrency", c.vsCurrency),
			zap.ByteString("responseBody", rawBody))
		return 0, fmt.Errorf("no %s price for %q in CoinGecko response", c.vsCurrency, coinID)
	}

	c.logger.Debug("Received price from CoinGecko", zap.String("coinID", coinID), zap.Float64("price", quote))
	return quote, nil
}
