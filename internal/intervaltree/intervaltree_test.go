package intervaltree_test

import (
	"math/big"
	"testing"

	"github.com/chainforge/vanityforge/internal/intervaltree"
	"github.com/stretchr/testify/require"
)

func rng(lo, hi int64) (*big.Int, *big.Int) {
	return big.NewInt(lo), big.NewInt(hi)
}

func TestInsertLookupDisjoint(t *testing.T) {
	tr := intervaltree.New()
	ranges := [][2]int64{{0, 9}, {20, 29}, {40, 49}, {10, 19}, {30, 39}, {50, 59}, {60, 69}}
	for i, r := range ranges {
		lo, hi := rng(r[0], r[1])
		n := intervaltree.NewNode(lo, hi, "p")
		conflict, ok := tr.Insert(n)
		require.True(t, ok, "insert %d should not conflict", i)
		require.Nil(t, conflict)
	}
	tr.AssertInvariants()
	require.Equal(t, len(ranges), tr.Len())

	for _, r := range ranges {
		mid := (r[0] + r[1]) / 2
		hit := tr.Lookup(big.NewInt(mid))
		require.NotNil(t, hit)
		require.True(t, hit.Lo.Cmp(big.NewInt(r[0])) == 0)
	}

	require.Nil(t, tr.Lookup(big.NewInt(70)))
	require.Nil(t, tr.Lookup(big.NewInt(-1)))
	require.Nil(t, tr.Lookup(big.NewInt(1000)))
}

func TestInsertOverlapRejected(t *testing.T) {
	tr := intervaltree.New()
	lo1, hi1 := rng(0, 100)
	first := intervaltree.NewNode(lo1, hi1, "first")
	_, ok := tr.Insert(first)
	require.True(t, ok)

	lo2, hi2 := rng(50, 150)
	second := intervaltree.NewNode(lo2, hi2, "second")
	conflict, ok := tr.Insert(second)
	require.False(t, ok)
	require.Same(t, first, conflict)
	require.Equal(t, 1, tr.Len())
}

func TestRemoveMaintainsInvariantsAndOrdering(t *testing.T) {
	tr := intervaltree.New()
	var nodes []*intervaltree.Node
	for i := int64(0); i < 50; i++ {
		lo, hi := rng(i*10, i*10+9)
		n := intervaltree.NewNode(lo, hi, "p")
		_, ok := tr.Insert(n)
		require.True(t, ok)
		nodes = append(nodes, n)
	}
	tr.AssertInvariants()

	// Remove every other node, interleaved, and check invariants hold
	// after each removal.
	for i := 0; i < len(nodes); i += 2 {
		tr.Remove(nodes[i])
		tr.AssertInvariants()
	}
	require.Equal(t, 25, tr.Len())

	inOrder := tr.InOrder()
	require.Len(t, inOrder, 25)
	for i := 1; i < len(inOrder); i++ {
		require.Equal(t, -1, inOrder[i-1].Hi.Cmp(inOrder[i].Lo))
	}

	for i := 1; i < len(nodes); i += 2 {
		tr.Remove(nodes[i])
		tr.AssertInvariants()
	}
	require.True(t, tr.Empty())
}

func TestRemoveSingleNode(t *testing.T) {
	tr := intervaltree.New()
	lo, hi := rng(0, 10)
	n := intervaltree.NewNode(lo, hi, "only")
	tr.Insert(n)
	tr.Remove(n)
	require.True(t, tr.Empty())
	require.Nil(t, tr.Lookup(big.NewInt(5)))
}

func TestAscendingInsertStaysBalanced(t *testing.T) {
	// A pathological ascending-order insert sequence would degenerate a
	// naive BST into a linked list; AVL rebalancing must keep it flat.
	tr := intervaltree.New()
	for i := int64(0); i < 200; i++ {
		lo, hi := rng(i*3, i*3+2)
		_, ok := tr.Insert(intervaltree.NewNode(lo, hi, "p"))
		require.True(t, ok)
	}
	tr.AssertInvariants()
}
