package vanityforge

import (
	"regexp"
	"sync"

	"golang.org/x/xerrors"
)

// RegexContext holds the compiled patterns for regex-mode search, under a
// reader/writer lock: reads (probing) happen far more often than writes
// (adding or retiring a pattern), so a plain mutex would serialize
// workers unnecessarily.
type RegexContext struct {
	mu      sync.RWMutex
	regexes []*regexp.Regexp
	sources []string
}

// NewRegexContext returns an empty RegexContext.
func NewRegexContext() *RegexContext {
	return &RegexContext{}
}

// AddPattern compiles pattern and appends it. Compile failures are
// returned for the caller to print and skip.
func (c *RegexContext) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return xerrors.Errorf("pattern %q: %w", pattern, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regexes = append(c.regexes, re)
	c.sources = append(c.sources, pattern)
	return nil
}

// Len reports how many compiled patterns remain active.
func (c *RegexContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.regexes)
}

// Empty reports whether every regex has been retired.
func (c *RegexContext) Empty() bool {
	return c.Len() == 0
}

// Probe tests candidate against every compiled regex under the read
// lock; on a hit it upgrades to the write lock and re-verifies the slot
// still holds the same compiled object before retiring it, since another
// worker may have swap-removed or otherwise mutated the array while the
// upgrade was pending.
func (c *RegexContext) Probe(candidate string) (pattern string, retired bool) {
	c.mu.RLock()
	hitIdx := -1
	var hitRe *regexp.Regexp
	for i, re := range c.regexes {
		if re.MatchString(candidate) {
			hitIdx, hitRe = i, re
			break
		}
	}
	c.mu.RUnlock()

	if hitIdx < 0 {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if hitIdx >= len(c.regexes) || c.regexes[hitIdx] != hitRe {
		// Another worker already retired this slot, or the array shifted
		// under us; the caller's loop will simply try again next candidate.
		return "", false
	}

	matched := c.sources[hitIdx]
	last := len(c.regexes) - 1
	c.regexes[hitIdx] = c.regexes[last]
	c.sources[hitIdx] = c.sources[last]
	c.regexes = c.regexes[:last]
	c.sources = c.sources[:last]
	return matched, true
}
