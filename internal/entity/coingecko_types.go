package entity

// SimplePriceResponse is the body of CoinGecko's /simple/price endpoint:
// coin id -> currency -> price, e.g. {"ethereum": {"usd": 3120.55}}.
type SimplePriceResponse map[string]map[string]float64
