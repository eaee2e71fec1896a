package port

import "context"

// PriceProvider resolves the USD price of a coin by its price feed id.
type PriceProvider interface {
	GetUSDPrice(ctx context.Context, coinID string) (float64, error)
}
