package vanityforge

import (
	"crypto/rand"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/xerrors"
)

// curveOrder is secp256k1's group order, the modulus a worker's scalar
// wraps around between forced rekeys.
var curveOrder = btcec.S256().N

var scalarOne = new(secp256k1.ModNScalar).SetInt(1)

// generator is the secp256k1 base point in Jacobian form, kept precomputed
// so Advance is a single point addition rather than a scalar multiply.
var generator = func() secp256k1.JacobianPoint {
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(scalarOne, &p)
	return p
}()

// KeyPair is a live secp256k1 candidate: a private scalar and the public
// point it corresponds to, held in Jacobian form so a worker can advance
// through a contiguous run of candidates with repeated point additions
// instead of a full scalar multiplication per candidate.
type KeyPair struct {
	scalar *secp256k1.ModNScalar
	point  secp256k1.JacobianPoint
}

// NewRandomKeyPair draws a uniformly random private scalar and computes
// its base-point multiple. This is the starting point for a worker's
// rekey interval.
func NewRandomKeyPair() (*KeyPair, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, xerrors.Errorf("generating private scalar: %w", err)
	}
	scalar := new(secp256k1.ModNScalar)
	overflow := scalar.SetByteSlice(buf[:])
	if overflow || scalar.IsZero() {
		return NewRandomKeyPair()
	}
	kp := &KeyPair{scalar: scalar}
	secp256k1.ScalarBaseMultNonConst(scalar, &kp.point)
	return kp, nil
}

// NewKeyPairFromScalar builds a KeyPair from an explicit 32-byte
// big-endian scalar, primarily for tests that need deterministic keys.
func NewKeyPairFromScalar(scalarBytes []byte) (*KeyPair, error) {
	scalar := new(secp256k1.ModNScalar)
	overflow := scalar.SetByteSlice(scalarBytes)
	if overflow || scalar.IsZero() {
		return nil, xerrors.New("scalar is zero or out of range")
	}
	kp := &KeyPair{scalar: scalar}
	secp256k1.ScalarBaseMultNonConst(scalar, &kp.point)
	return kp, nil
}

// Advance adds the generator point to the current point and increments
// the scalar by one. Callers must call Advance fewer than
// RemainingUntilOverflow times without rekeying.
func (k *KeyPair) Advance() {
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&k.point, &generator, &sum)
	k.point = sum
	k.scalar.Add(scalarOne)
}

// ScalarBigInt returns the current private scalar as a big.Int.
func (k *KeyPair) ScalarBigInt() *big.Int {
	b := k.scalar.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// RemainingUntilOverflow returns curveOrder minus the current scalar: the
// number of Advance calls after which the scalar wraps to zero.
func (k *KeyPair) RemainingUntilOverflow() *big.Int {
	return new(big.Int).Sub(curveOrder, k.ScalarBigInt())
}

// PrivateKeyScalarBytes returns the current private scalar as a 32-byte
// big-endian buffer, suitable for PrivateKeyWIF.
func (k *KeyPair) PrivateKeyScalarBytes() []byte {
	b := k.scalar.Bytes()
	out := make([]byte, 32)
	copy(out, b[:])
	return out
}

// UncompressedPublicKey returns the 65-byte uncompressed SEC1 encoding
// (0x04 ‖ X ‖ Y) of the current public point, the form hash160 expects.
func (k *KeyPair) UncompressedPublicKey() []byte {
	affine := k.point
	affine.ToAffine()
	out := make([]byte, 0, uncompressedPubKeyLen)
	out = append(out, 0x04)
	xb := affine.X.Bytes()
	yb := affine.Y.Bytes()
	out = append(out, xb[:]...)
	out = append(out, yb[:]...)
	return out
}
