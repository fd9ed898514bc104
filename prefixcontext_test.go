package vanityforge_test

import (
	"math/big"
	"testing"

	"github.com/chainforge/vanityforge"
	"github.com/stretchr/testify/require"
)

func TestPrefixContextAddAndChance(t *testing.T) {
	ctx := vanityforge.NewPrefixContext(0)
	_, err := ctx.AddPattern("19", false)
	require.NoError(t, err)
	require.Equal(t, 1, ctx.PatternCount())

	chance := ctx.Chance()
	require.NotNil(t, chance)
	require.True(t, chance.Sign() > 0)
}

func TestPrefixContextOverlapIsRolledBack(t *testing.T) {
	ctx := vanityforge.NewPrefixContext(0)
	_, err := ctx.AddPattern("1", false) // covers the entire version-0 window
	require.NoError(t, err)
	require.Equal(t, 1, ctx.PatternCount())

	_, err = ctx.AddPattern("19", false)
	require.Error(t, err)
	require.Equal(t, 1, ctx.PatternCount(), "failed pattern must not change the active count")
}

func TestPrefixContextCaseInsensitiveSiblingsRetireAtomically(t *testing.T) {
	ctx := vanityforge.NewPrefixContext(0)
	_, err := ctx.AddPattern("1a", true)
	require.NoError(t, err)
	require.Equal(t, 1, ctx.PatternCount())

	// "1a" has one case-flexible letter, so this inserts sibling ranges
	// for both "1a" and "1A" (three in all: "1A" solves to two ranges);
	// probing any one of them must retire them all.
	ranges, err := vanityforge.SolvePrefixRanges("1a", 0)
	require.NoError(t, err)
	require.NotEmpty(t, ranges)

	pattern, retired := ctx.Probe(ranges[0].Lo)
	require.True(t, retired)
	require.Equal(t, "1a", pattern)
	require.True(t, ctx.Empty())
}

func TestPrefixContextProbeMiss(t *testing.T) {
	ctx := vanityforge.NewPrefixContext(0)
	_, err := ctx.AddPattern("19", false)
	require.NoError(t, err)

	_, retired := ctx.Probe(big.NewInt(-1))
	require.False(t, retired)
	require.Equal(t, 1, ctx.PatternCount())
}

func TestPrefixContextInvalidPatternReturnsError(t *testing.T) {
	ctx := vanityforge.NewPrefixContext(0)
	_, err := ctx.AddPattern("1l", false)
	require.Error(t, err)
	require.Equal(t, 0, ctx.PatternCount())
}
