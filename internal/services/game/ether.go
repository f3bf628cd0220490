package game

import (
	"math/big"
	"strings"
)

var weiPerEther = big.NewInt(1_000_000_000_000_000_000)

// formatEther renders a wei amount as a decimal ETH string without
// trailing zeros.
func formatEther(wei *big.Int) string {
	if wei == nil || wei.Sign() == 0 {
		return "0"
	}

	r := new(big.Rat).SetFrac(new(big.Int).Set(wei), weiPerEther)
	s := r.FloatString(18)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
