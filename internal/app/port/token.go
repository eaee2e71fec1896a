package port

// TokenProvider defines the interface for fetching the tracked token list of a network.
type TokenProvider interface {
	// GetTokenAddresses returns a copy of the token contract addresses tracked for the network.
	GetTokenAddresses(networkIdentifier string) []string
}
