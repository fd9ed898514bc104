package vanityforge

// NetworkParams bundles the address and private-key version bytes that
// determine which Base58Check payload prefix a search targets.
type NetworkParams struct {
	// AddressVersion is the version byte prepended to a hash160 payload
	// before Base58Check encoding an address.
	AddressVersion byte
	// PrivateVersion is the version byte prepended to a raw scalar
	// payload before Base58Check encoding a WIF private key.
	PrivateVersion byte
}

// Well-known network parameter sets selectable from the command line.
var (
	// MainnetParams are the default bitcoin mainnet version bytes.
	MainnetParams = NetworkParams{AddressVersion: 0, PrivateVersion: 128}
	// NamecoinParams is selected with -N.
	NamecoinParams = NetworkParams{AddressVersion: 52, PrivateVersion: 128}
	// TestnetParams is selected with -T.
	TestnetParams = NetworkParams{AddressVersion: 111, PrivateVersion: 239}
)

// Field lengths used throughout the search engine.
const (
	// Hash160Len is the length in bytes of RIPEMD160(SHA256(pubkey)).
	Hash160Len = 20
	// AddressPayloadLen is the length in bytes of versionByte ‖ hash160.
	AddressPayloadLen = 1 + Hash160Len
	// PrivateKeyScalarLen is the length in bytes of a serialized secp256k1
	// private scalar.
	PrivateKeyScalarLen = 32
	// uncompressedPubKeyLen is the length in bytes of an uncompressed
	// secp256k1 public key (0x04 ‖ X ‖ Y).
	uncompressedPubKeyLen = 65
	// addressSpaceBits is the width, in bits, of the
	// "version ‖ hash160 ‖ checksum" space the prefix range solver
	// reasons about: the 168-bit payload followed by 32 checksum bits.
	addressSpaceBits = 200
	// versionWindowBits is the width, in bits, of a single version byte's
	// window within the 200-bit space (2^192 values per version byte).
	versionWindowBits = 192
)
