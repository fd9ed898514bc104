package vanityforge

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // ripemd160 is required for bitcoin-style hash160
)

// Hash160 computes RIPEMD160(SHA256(data)), the digest bitcoin-style
// addresses hash public keys with.
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripe := ripemd160.New()
	ripe.Write(sha[:]) //nolint:errcheck // hash.Hash.Write never returns an error
	return ripe.Sum(nil)
}

// AddressPayload builds the 21-byte versionByte ‖ hash160(pubkeyOctets)
// buffer that Base58CheckEncode wraps into a bitcoin-style address.
func AddressPayload(versionByte byte, uncompressedPubKey []byte) []byte {
	payload := make([]byte, 0, AddressPayloadLen)
	payload = append(payload, versionByte)
	payload = append(payload, Hash160(uncompressedPubKey)...)
	return payload
}

// Address renders the Base58Check-encoded bitcoin-style address for an
// uncompressed secp256k1 public key under the given address version byte.
func Address(versionByte byte, uncompressedPubKey []byte) string {
	payload := AddressPayload(versionByte, uncompressedPubKey)
	return Base58CheckEncode(payload[0], payload[1:])
}

// PrivateKeyWIF renders the Base58Check-encoded Wallet Import Format for a
// 32-byte big-endian secp256k1 scalar under the given private version byte.
func PrivateKeyWIF(privateVersion byte, scalar []byte) string {
	return Base58CheckEncode(privateVersion, scalar)
}
