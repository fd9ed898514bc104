package vanityforge

import (
	"math/big"
	"sync"

	"github.com/chainforge/vanityforge/internal/caseiter"
	"github.com/chainforge/vanityforge/internal/intervaltree"
	"golang.org/x/xerrors"
)

// PrefixContext aggregates every active prefix pattern into a single
// interval tree, tracking cumulative difficulty.
type PrefixContext struct {
	mu             sync.Mutex
	tree           *intervaltree.Tree
	addressVersion byte
	patternCount   int
	totalWidth     *big.Int
}

// NewPrefixContext returns an empty PrefixContext targeting addressVersion.
func NewPrefixContext(addressVersion byte) *PrefixContext {
	return &PrefixContext{
		tree:           intervaltree.New(),
		addressVersion: addressVersion,
		totalWidth:     new(big.Int),
	}
}

// AddPattern solves and inserts the interval(s) for pattern, expanding it
// into case variants first when caseInsensitive is set. Every interval
// produced for this pattern — across every variant, and across the up-to
// -two ranges each variant's SolvePrefixRanges call can return — is
// linked into one circular sibling ring so a single match retires the
// whole pattern at once.
//
// If any variant fails to solve or its range overlaps an existing
// interval, every interval already inserted for this pattern is rolled
// back and an error is returned describing the first failure; the caller
// is expected to print it and move on to the next pattern.
func (c *PrefixContext) AddPattern(pattern string, caseInsensitive bool) (caseVariantWarning string, err error) {
	variants := []string{pattern}
	if caseInsensitive {
		it := caseiter.New(pattern)
		if it.Bits() > caseiter.MaxBits {
			caseVariantWarning = xerrors.Errorf("pattern %q expands to 2^%d case variants", pattern, it.Bits()).Error()
		}
		variants = variants[:0]
		for {
			v, ok := it.Next()
			if !ok {
				break
			}
			variants = append(variants, v)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var inserted []*intervaltree.Node
	rollback := func() {
		for _, n := range inserted {
			c.tree.Remove(n)
		}
	}

	for _, v := range variants {
		ranges, err := SolvePrefixRanges(v, c.addressVersion)
		if err != nil {
			rollback()
			return caseVariantWarning, xerrors.Errorf("pattern %q: %w", pattern, err)
		}
		for _, r := range ranges {
			node := intervaltree.NewNode(r.Lo, r.Hi, pattern)
			conflict, ok := c.tree.Insert(node)
			if !ok {
				rollback()
				return caseVariantWarning, xerrors.Errorf("pattern %q: ignored, overlaps %q", pattern, conflict.Pattern)
			}
			inserted = append(inserted, node)
		}
	}

	linkSiblings(inserted)

	width := new(big.Int)
	for _, n := range inserted {
		width.Add(width, intervalWidth(n))
	}
	c.totalWidth.Add(c.totalWidth, width)
	c.patternCount++

	return caseVariantWarning, nil
}

// linkSiblings wires nodes into a circular list in place.
func linkSiblings(nodes []*intervaltree.Node) {
	for i, n := range nodes {
		n.Sibling = nodes[(i+1)%len(nodes)]
	}
}

// intervalWidth is the inclusive size hi-lo+1 of a node's range.
func intervalWidth(n *intervaltree.Node) *big.Int {
	w := new(big.Int).Sub(n.Hi, n.Lo)
	return w.Add(w, big.NewInt(1))
}

// Probe looks up target and, on a hit, retires the matched pattern's
// entire sibling ring before returning, all under the same critical
// section.
func (c *PrefixContext) Probe(target *big.Int) (pattern string, retired bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hit := c.tree.Lookup(target)
	if hit == nil {
		return "", false
	}
	c.retireLocked(hit)
	return hit.Pattern, true
}

// retireLocked removes every node in hit's sibling ring and subtracts
// their combined width from totalWidth. c.mu must be held.
func (c *PrefixContext) retireLocked(hit *intervaltree.Node) {
	width := new(big.Int)
	n := hit
	for {
		next := n.Sibling
		width.Add(width, intervalWidth(n))
		c.tree.Remove(n)
		if next == nil || next == hit {
			break
		}
		n = next
	}
	c.totalWidth.Sub(c.totalWidth, width)
	c.patternCount--
}

// Rekey draws a fresh random keypair under the context lock, sharing
// the prefix-context mutex with lookup and retirement so a rekey can
// never race a concurrent insert or probe.
func (c *PrefixContext) Rekey() (*KeyPair, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewRandomKeyPair()
}

// Empty reports whether every pattern has been retired.
func (c *PrefixContext) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Empty()
}

// PatternCount returns the number of distinct user patterns still active.
func (c *PrefixContext) PatternCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.patternCount
}

// versionWindowSize is 2^192, the numerator of the difficulty formula.
var versionWindowSize = new(big.Int).Lsh(big.NewInt(1), versionWindowBits)

// Chance returns 2^192 / total_width, the expected number of candidates
// per match, or nil if no patterns are active.
func (c *PrefixContext) Chance() *big.Float {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.totalWidth.Sign() == 0 {
		return nil
	}
	num := new(big.Float).SetInt(versionWindowSize)
	den := new(big.Float).SetInt(c.totalWidth)
	return new(big.Float).Quo(num, den)
}
