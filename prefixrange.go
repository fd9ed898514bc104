package vanityforge

import (
	"math/big"

	"golang.org/x/xerrors"
)

// b58Digit maps a base-58 alphabet character to its numeric digit value,
// or -1 if the character is not part of the alphabet. btcutil/base58
// exposes Encode/Decode but no per-character inverse lookup, so the range
// solver keeps its own small table, mirroring vanitygen.c's
// b58_reverse_map.
var b58Digit = func() [256]int8 {
	const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		table[alphabet[i]] = int8(i)
	}
	return table
}()

// maxLeadingOnes is the largest number of leading '1' characters the
// solver will accept in a prefix.
const maxLeadingOnes = 19

// minBase58Margin is the minimum number of base-58 digits of headroom the
// solver requires below the prefix, to leave room for the checksum and a
// reasonable search space.
const minBase58Margin = 6

// PrefixRange is one [Lo, Hi] interval of 200-bit "version ‖ hash160"
// values whose Base58Check encoding is guaranteed to begin with a given
// prefix string.
type PrefixRange struct {
	Lo, Hi *big.Int
}

// ErrPrefixTooLong indicates the prefix leaves too little room below it
// in base-58 digit space for a meaningful search.
var ErrPrefixTooLong = xerrors.New("prefix is too long")

// ErrPrefixNotPossible indicates the prefix cannot occur under the
// configured address version byte.
var ErrPrefixNotPossible = xerrors.New("prefix is not possible for this address version")

// ErrInvalidCharacter indicates the prefix contains a byte outside the
// base-58 alphabet.
type ErrInvalidCharacter struct {
	Char byte
}

func (e *ErrInvalidCharacter) Error() string {
	return xerrors.Errorf("invalid character %q in prefix", e.Char).Error()
}

// SolvePrefixRanges maps a base-58 prefix string and a target address
// version byte to one or two disjoint 200-bit ranges such that a 21-byte
// "versionByte ‖ hash160" payload, followed by four zero bytes in place
// of the checksum and interpreted as a 200-bit unsigned big-endian
// integer, Base58Check-encodes to a string
// starting with pfx if and only if it lies in one of the returned ranges.
func SolvePrefixRanges(pfx string, versionByte byte) ([]PrefixRange, error) {
	zeroRun := 0
	for zeroRun < len(pfx) && pfx[zeroRun] == '1' {
		zeroRun++
		if zeroRun > maxLeadingOnes {
			return nil, ErrPrefixTooLong
		}
	}

	target := new(big.Int)
	topDigit := int64(-1)
	for i := zeroRun; i < len(pfx); i++ {
		digit := b58Digit[pfx[i]]
		if digit < 0 {
			return nil, &ErrInvalidCharacter{Char: pfx[i]}
		}
		if i == zeroRun {
			topDigit = int64(digit)
		}
		target.Mul(target, big58)
		target.Add(target, big.NewInt(int64(digit)))
	}
	hasDigits := len(pfx) > zeroRun

	ceil := new(big.Int).Lsh(big.NewInt(1), uint(addressSpaceBits-8*zeroRun))
	ceil.Sub(ceil, big.NewInt(1))
	floor := new(big.Int).Lsh(big.NewInt(1), uint(versionWindowBits-8*zeroRun))

	var lo, hi *big.Int
	var lo2, hi2 *big.Int

	if !hasDigits {
		lo = big.NewInt(0)
		hi = new(big.Int).Set(ceil)
	} else {
		b58pow, b58ceil := base58DigitCount(ceil)
		digitsConsumed := len(pfx) - zeroRun
		if b58pow-digitsConsumed < minBase58Margin {
			return nil, ErrPrefixTooLong
		}

		shift := new(big.Int).Exp(big58, big.NewInt(int64(b58pow-digitsConsumed)), nil)
		lo = new(big.Int).Mul(target, shift)
		hi = new(big.Int).Add(lo, new(big.Int).Sub(shift, big.NewInt(1)))

		// Whether a digit can still be appended below the prefix without
		// overflowing ceil's own leading digit depends only on the
		// prefix's first post-leading-ones digit, not the full
		// accumulated value — a multi-digit prefix can be numerically far
		// larger than b58ceil while still qualifying here, matching
		// vanitygen.c's get_prefix_ranges, which tracks this as a
		// separate "b58top" set once and never updated.
		if topDigit <= int64(b58ceil) {
			lo2 = new(big.Int).Mul(lo, big58)
			hi2 = new(big.Int).Add(new(big.Int).Mul(hi, big58), big.NewInt(57))

			switch {
			case ceil.Cmp(lo2) < 0:
				// Upper range lies entirely above ceil: discard it.
				lo2, hi2 = nil, nil
			case ceil.Cmp(hi2) < 0:
				hi2 = new(big.Int).Set(ceil)
			}

			if lo2 != nil {
				switch {
				case floor.Cmp(hi) >= 0:
					// Lower range lies entirely below floor: promote upper.
					lo, hi = lo2, hi2
					lo2, hi2 = nil, nil
				case floor.Cmp(lo) > 0:
					lo = new(big.Int).Set(floor)
				}
			}
		}
	}

	versionLo := new(big.Int).Lsh(big.NewInt(int64(versionByte)), versionWindowBits)
	versionHi := new(big.Int).Lsh(big.NewInt(int64(versionByte)+1), versionWindowBits)

	lo, hi, ok := intersect(lo, hi, versionLo, versionHi)
	lo2, hi2, ok2 := intersect(lo2, hi2, versionLo, versionHi)

	switch {
	case ok && ok2:
		return []PrefixRange{{Lo: lo, Hi: hi}, {Lo: lo2, Hi: hi2}}, nil
	case ok:
		return []PrefixRange{{Lo: lo, Hi: hi}}, nil
	case ok2:
		return []PrefixRange{{Lo: lo2, Hi: hi2}}, nil
	default:
		return nil, ErrPrefixNotPossible
	}
}

var big58 = big.NewInt(58)

// intersect returns the intersection of [lo,hi] with [winLo,winHi), or
// ok=false if either input range is nil or the intersection is empty.
func intersect(lo, hi, winLo, winHi *big.Int) (*big.Int, *big.Int, bool) {
	if lo == nil || hi == nil {
		return nil, nil, false
	}
	newLo := lo
	if winLo.Cmp(lo) > 0 {
		newLo = winLo
	}
	winHiInclusive := new(big.Int).Sub(winHi, big.NewInt(1))
	newHi := hi
	if winHiInclusive.Cmp(hi) < 0 {
		newHi = winHiInclusive
	}
	if newLo.Cmp(newHi) > 0 {
		return nil, nil, false
	}
	return newLo, newHi, true
}

// base58DigitCount returns the power of 58 of n's most significant
// base-58 digit (one less than the number of digits needed to represent
// n), and the value of that digit.
func base58DigitCount(n *big.Int) (digits int, topDigit int) {
	tmp := new(big.Int).Set(n)
	rem := new(big.Int)
	for tmp.Cmp(big58) > 0 {
		digits++
		tmp.DivMod(tmp, big58, rem)
	}
	return digits, int(tmp.Int64())
}
