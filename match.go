package vanityforge

import (
	"encoding/hex"
	"fmt"
)

// Match is a single found keypair satisfying a user pattern, the payload
// of the stdout contract.
type Match struct {
	Pattern       string `json:"pattern"`
	Address       string `json:"address"`
	PrivateKey    string `json:"privkey"`
	PublicKeyHex  string `json:"pubkey_hex,omitempty"`
	PrivateKeyHex string `json:"privkey_hex,omitempty"`
}

// NewMatch derives a Match's address and WIF private key from a keypair,
// grounded on vanitygen.c's output_match/encode_address/encode_privkey.
func NewMatch(pattern string, kp *KeyPair, addressVersion, privateVersion byte) Match {
	pub := kp.UncompressedPublicKey()
	scalar := kp.PrivateKeyScalarBytes()
	return Match{
		Pattern:       pattern,
		Address:       Address(addressVersion, pub),
		PrivateKey:    PrivateKeyWIF(privateVersion, scalar),
		PublicKeyHex:  hex.EncodeToString(pub),
		PrivateKeyHex: hex.EncodeToString(scalar),
	}
}

// Text renders m per the stdout contract: three lines, plus hex key
// material when verbose is set.
func (m Match) Text(verbose bool) string {
	out := fmt.Sprintf("Pattern: %s\nAddress: %s\nPrivkey: %s\n", m.Pattern, m.Address, m.PrivateKey)
	if verbose {
		out += fmt.Sprintf("Pubkey: %s\nPrivkey(hex): %s\n", m.PublicKeyHex, m.PrivateKeyHex)
	}
	return out
}
