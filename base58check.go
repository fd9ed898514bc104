package vanityforge

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/xerrors"
)

// checksum computes the 4-byte Base58Check checksum of a payload: the
// first four bytes of SHA256(SHA256(payload)).
func checksum(payload []byte) [4]byte {
	h := sha256.Sum256(payload)
	h2 := sha256.Sum256(h[:])
	var cksum [4]byte
	copy(cksum[:], h2[:4])
	return cksum
}

// Base58CheckEncode encodes versionByte ‖ payload ‖ checksum(versionByte‖payload)
// as a base-58 string. Used for both addresses (hash160 payloads) and
// WIF private keys (raw scalar payloads).
func Base58CheckEncode(versionByte byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+4)
	buf = append(buf, versionByte)
	buf = append(buf, payload...)
	cksum := checksum(buf)
	buf = append(buf, cksum[:]...)
	return base58.Encode(buf)
}

// Base58CheckDecode reverses Base58CheckEncode, validating the checksum and
// splitting off the leading version byte.
func Base58CheckDecode(input string) (versionByte byte, payload []byte, err error) {
	decoded := base58.Decode(input)
	if len(decoded) < 5 {
		return 0, nil, xerrors.Errorf("%q is not valid base58check: too short", input)
	}

	body := decoded[:len(decoded)-4]
	var want [4]byte
	copy(want[:], decoded[len(decoded)-4:])
	if checksum(body) != want {
		return 0, nil, xerrors.Errorf("base58check checksum mismatch for %q", input)
	}

	return body[0], body[1:], nil
}
