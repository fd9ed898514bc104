package vanityforge

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// SearchMode selects whether workers probe the prefix context or the
// regex context.
type SearchMode int

const (
	// ModePrefix searches against a PrefixContext.
	ModePrefix SearchMode = iota
	// ModeRegex searches against a RegexContext.
	ModeRegex
)

// Coordinator owns the state N search workers share: the active pattern
// context, telemetry, and the address/private version bytes every
// candidate is derived under.
type Coordinator struct {
	mode            SearchMode
	prefixCtx       *PrefixContext
	regexCtx        *RegexContext
	telemetry       *Telemetry
	addressVersion  byte
	privateVersion  byte
	verbose         bool
	workerCount     int
	totalCandidates int64
}

// NewPrefixCoordinator builds a Coordinator that searches ctx with
// workerCount workers (runtime.NumCPU() if <= 0).
func NewPrefixCoordinator(ctx *PrefixContext, addressVersion, privateVersion byte, workerCount int, verbose bool) *Coordinator {
	return newCoordinator(ModePrefix, ctx, nil, addressVersion, privateVersion, workerCount, verbose)
}

// NewRegexCoordinator builds a Coordinator that searches ctx with
// workerCount workers (runtime.NumCPU() if <= 0).
func NewRegexCoordinator(ctx *RegexContext, addressVersion, privateVersion byte, workerCount int, verbose bool) *Coordinator {
	return newCoordinator(ModeRegex, nil, ctx, addressVersion, privateVersion, workerCount, verbose)
}

func newCoordinator(mode SearchMode, prefixCtx *PrefixContext, regexCtx *RegexContext, addressVersion, privateVersion byte, workerCount int, verbose bool) *Coordinator {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	return &Coordinator{
		mode:           mode,
		prefixCtx:      prefixCtx,
		regexCtx:       regexCtx,
		telemetry:      NewTelemetry(),
		addressVersion: addressVersion,
		privateVersion: privateVersion,
		verbose:        verbose,
		workerCount:    workerCount,
	}
}

// WorkerCount reports how many worker goroutines Run will spawn.
func (c *Coordinator) WorkerCount() int {
	return c.workerCount
}

// RunWithCallback spawns the worker pool and invokes onMatch for each
// match as it arrives, blocking until every pattern has been retired —
// the last worker's return ends the search. It returns the number of
// matches emitted. onMatch is called from the coordinating goroutine,
// never concurrently.
func (c *Coordinator) RunWithCallback(onMatch func(Match)) int {
	var wg sync.WaitGroup
	matches := make(chan Match)

	for i := 0; i < c.workerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(id, c, matches)
		}(i)
	}

	go func() {
		wg.Wait()
		close(matches)
	}()

	count := 0
	for m := range matches {
		onMatch(m)
		count++
	}
	return count
}

// Run is RunWithCallback specialized to the plain-text stdout contract
// each match is written to out prefixed with a newline, so it
// never runs together with an in-progress telemetry line.
func (c *Coordinator) Run(out io.Writer) int {
	return c.RunWithCallback(func(m Match) {
		fmt.Fprint(out, "\n"+m.Text(c.verbose))
	})
}
