package types

// chainNames maps EVM chain ids to human readable network names
var chainNames = map[int64]string{
	1:        "Ethereum",
	137:      "Polygon",
	10:       "Optimism",
	42161:    "Arbitrum",
	8453:     "Base",
	56:       "BNB Chain",
	43114:    "Avalanche",
	324:      "zkSync Era",
	100:      "Gnosis Chain",
	1101:     "Polygon zkEVM",
	314:      "Filecoin",
	42220:    "Celo",
	11155111: "Sepolia",
	534351:   "Scroll Sepolia",
}

// UnknownChainName is rendered for chain ids outside the static table
const UnknownChainName = "Unknown Chain"

// GetChainName resolves a chain id to its display name
func GetChainName(chainID int64) string {
	if name, ok := chainNames[chainID]; ok {
		return name
	}
	return UnknownChainName
}
