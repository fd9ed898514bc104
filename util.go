package vanityforge

import (
	"math/big"
)

// bigFromBytes interprets buf as a big-endian unsigned integer, the same
// convention used throughout the prefix range solver and interval tree.
func bigFromBytes(buf []byte) *big.Int {
	return new(big.Int).SetBytes(buf)
}
