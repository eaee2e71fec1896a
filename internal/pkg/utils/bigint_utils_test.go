package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGwei(t *testing.T) {
	tests := []struct {
		name string
		wei  *big.Int
		want string
	}{
		{"rounds to two decimals", big.NewInt(12_345_600_000), "12.35"},
		{"zero", big.NewInt(0), "0.00"},
		{"whole gwei", big.NewInt(1_000_000_000), "1.00"},
		{"half rounds up", big.NewInt(1_005_000_000), "1.01"},
		{"sub gwei", big.NewInt(1_500_000), "0.00"},
		{"nil", nil, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatGwei(tt.wei))
		})
	}
}

func TestFormatBigInt(t *testing.T) {
	oneWei := big.NewInt(1)
	large, _ := new(big.Int).SetString("1234500000000000000", 10)

	assert.Equal(t, "1.5", FormatBigInt(big.NewInt(1_500_000), 6))
	assert.Equal(t, "2", FormatBigInt(big.NewInt(2_000_000), 6))
	assert.Equal(t, "1.2345", FormatBigInt(large, 18))
	assert.Equal(t, "42", FormatBigInt(big.NewInt(42), 0))
	assert.Equal(t, "0.000000000000000001", FormatBigInt(oneWei, 18))
	assert.Equal(t, "0", FormatBigInt(nil, 18))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "3000", FormatPrice(3000))
	assert.Equal(t, "1.23", FormatPrice(1.23))
	assert.Equal(t, "3120.55", FormatPrice(3120.55))
	assert.Equal(t, "0.000012", FormatPrice(0.000012))
}
