package entity

import "errors"

var (
	// ErrUnsupportedChain means the requested chain is not in the network registry.
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrInvalidAddress means a wallet address failed format validation.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUpstreamFailure means a required call to the RPC node or the price API failed.
	ErrUpstreamFailure = errors.New("upstream failure")
)
