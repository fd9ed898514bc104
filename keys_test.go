package vanityforge_test

import (
	"bytes"
	"testing"

	"github.com/chainforge/vanityforge"
	"github.com/stretchr/testify/require"
)

func TestNewRandomKeyPairProducesValidPoint(t *testing.T) {
	kp, err := vanityforge.NewRandomKeyPair()
	require.NoError(t, err)
	pub := kp.UncompressedPublicKey()
	require.Len(t, pub, 65)
	require.Equal(t, byte(0x04), pub[0])
}

func TestAdvanceMatchesIndependentScalar(t *testing.T) {
	scalar := bytes.Repeat([]byte{0}, 31)
	scalar = append(scalar, 7)

	kp, err := vanityforge.NewKeyPairFromScalar(scalar)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		kp.Advance()
	}

	direct, err := vanityforge.NewKeyPairFromScalar(append(bytes.Repeat([]byte{0}, 31), 12))
	require.NoError(t, err)

	require.Equal(t, direct.UncompressedPublicKey(), kp.UncompressedPublicKey())
	require.Equal(t, 0, direct.ScalarBigInt().Cmp(kp.ScalarBigInt()))
}

func TestRemainingUntilOverflowShrinksAsScalarGrows(t *testing.T) {
	kp, err := vanityforge.NewKeyPairFromScalar(append(bytes.Repeat([]byte{0}, 31), 1))
	require.NoError(t, err)

	before := kp.RemainingUntilOverflow()
	kp.Advance()
	after := kp.RemainingUntilOverflow()

	require.Equal(t, -1, after.Cmp(before))
}

func TestNewKeyPairFromScalarRejectsZero(t *testing.T) {
	_, err := vanityforge.NewKeyPairFromScalar(make([]byte, 32))
	require.Error(t, err)
}

func TestPrivateKeyScalarBytesRoundTrips(t *testing.T) {
	scalar := bytes.Repeat([]byte{0}, 31)
	scalar = append(scalar, 42)
	kp, err := vanityforge.NewKeyPairFromScalar(scalar)
	require.NoError(t, err)
	require.Equal(t, scalar, kp.PrivateKeyScalarBytes())
}
