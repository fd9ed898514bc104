package caseiter_test

import (
	"testing"

	"github.com/chainforge/vanityforge/internal/caseiter"
	"github.com/stretchr/testify/require"
)

func TestNoFlexibleLetters(t *testing.T) {
	it := caseiter.New("19")
	require.Equal(t, 0, it.Bits())
	require.Equal(t, 1, it.Count())

	v, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "19", v)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestFourVariants(t *testing.T) {
	// "1aB" has two case-flexible letters (a, B), so all four combinations
	// of their case must be produced, matching spec scenario 5.
	it := caseiter.New("1aB")
	require.Equal(t, 2, it.Bits())
	require.Equal(t, 4, it.Count())

	var got []string
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.ElementsMatch(t, []string{"1ab", "1Ab", "1aB", "1AB"}, got)
	require.Len(t, got, 4)
}

func TestAmbiguousLettersNeverFlex(t *testing.T) {
	// I, O, and L each have only one valid case in the base-58 alphabet,
	// so none of them should ever be toggled.
	it := caseiter.New("IoLa")
	require.Equal(t, 1, it.Bits())
	require.Equal(t, 2, it.Count())

	var got []string
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.ElementsMatch(t, []string{"IoLa", "IoLA"}, got)
}

func TestEmptyPrefix(t *testing.T) {
	it := caseiter.New("")
	require.Equal(t, 0, it.Bits())
	v, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "", v)
	_, ok = it.Next()
	require.False(t, ok)
}
