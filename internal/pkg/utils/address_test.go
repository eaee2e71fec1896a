package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"checksummed", "0xdAC17F958D2ee523a2206206994597C13D831ec7", true},
		{"lowercase", "0xdac17f958d2ee523a2206206994597c13d831ec7", true},
		{"uppercase", "0xDAC17F958D2EE523A2206206994597C13D831EC7", true},
		{"no prefix", "dac17f958d2ee523a2206206994597c13d831ec7", true},
		{"bad checksum", "0xdac17F958D2ee523a2206206994597C13D831ec7", false},
		{"too short", "0xdac17f958d2ee523a2206206994597c13d831e", false},
		{"not hex", "0xzac17f958d2ee523a2206206994597c13d831ec7", false},
		{"empty", "", false},
		{"garbage", "not-an-address", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.address))
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", NormalizeAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"))
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", NormalizeAddress("DAC17F958D2EE523A2206206994597C13D831EC7"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CHAIN_STATS_TEST_ENV", "value")
	assert.Equal(t, "value", GetEnv("CHAIN_STATS_TEST_ENV", "fallback"))

	t.Setenv("CHAIN_STATS_TEST_ENV", "")
	assert.Equal(t, "fallback", GetEnv("CHAIN_STATS_TEST_ENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CHAIN_STATS_TEST_ENV_UNSET", "fallback"))
}
