package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetChainName(t *testing.T) {
	testCases := []struct {
		chainID int64
		name    string
	}{
		{1, "Ethereum"},
		{137, "Polygon"},
		{10, "Optimism"},
		{42161, "Arbitrum"},
		{8453, "Base"},
		{56, "BNB Chain"},
		{43114, "Avalanche"},
		{324, "zkSync Era"},
		{100, "Gnosis Chain"},
		{1101, "Polygon zkEVM"},
		{314, "Filecoin"},
		{42220, "Celo"},
		{11155111, "Sepolia"},
		{534351, "Scroll Sepolia"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.name, GetChainName(tc.chainID))
	}

	assert.Equal(t, "Unknown Chain", GetChainName(0))
	assert.Equal(t, "Unknown Chain", GetChainName(999999))
}

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_INVOICE)
	assert.Contains(t, id, "inv_")

	other := GenerateUUIDWithPrefix(UUID_PREFIX_INVOICE)
	assert.NotEqual(t, id, other)
}
