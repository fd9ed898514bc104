package vanityforge

import (
	"fmt"
	"math"
	"math/big"
	"os"
	"sync"
)

// Telemetry aggregates per-worker sampled throughput into a shared rate
// map, each worker recording its own last-measured candidates-per-second
// figure under one mutex. Go maps replace the linked list an equivalent
// single-threaded tool might use; the locking discipline is the same
// either way.
type Telemetry struct {
	mu    sync.Mutex
	rates map[int]float64
}

// NewTelemetry returns an empty Telemetry.
func NewTelemetry() *Telemetry {
	return &Telemetry{rates: make(map[int]float64)}
}

// firstWorkerID is the designated printer. A thread-based implementation
// might compare its own thread handle against the head of a rate list;
// goroutines carry no such stable identity, so worker 0 stands in as a
// deterministic substitute for "whichever worker happens to be first".
const firstWorkerID = 0

// Sample records workerID's most recently measured rate (candidates per
// second). If workerID is firstWorkerID, it also returns the aggregate
// status line for the caller to print; every other worker's call is a
// silent bookkeeping update.
func (t *Telemetry) Sample(workerID int, rate float64, total int64, chance *big.Float) (line string, shouldPrint bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rates[workerID] = rate
	if workerID != firstWorkerID {
		return "", false
	}

	sum := 0.0
	for _, r := range t.rates {
		sum += r
	}
	return formatStatusLine(sum, total, chance), true
}

// printStatusLine writes a telemetry line to stdout without a trailing
// newline, so repeated calls overwrite the same terminal line via the
// leading "\r".
func printStatusLine(line string) {
	fmt.Fprint(os.Stdout, line)
}

// etaTargets are the cumulative-probability checkpoints a status line
// reports ETA against, in ascending order.
var etaTargets = []float64{0.5, 0.75, 0.8, 0.9, 0.95, 1.0}

// formatStatusLine builds the fixed-format telemetry line. chance is nil
// in regex mode, where the probability model has no meaning and Prob/ETA
// are omitted entirely.
func formatStatusLine(rateTotal float64, total int64, chance *big.Float) string {
	line := fmt.Sprintf("\r[%.2f K/s][total %d]", rateTotal/1000.0, total)

	if chance != nil {
		chanceF, _ := chance.Float64()
		if chanceF > 0 {
			prob := 1 - math.Exp(-float64(total)/chanceF)
			line += fmt.Sprintf("[Prob %.4f%%]", prob*100)
			if target, ok := nextETATarget(prob); ok && rateTotal > 0 {
				etaSeconds := (-chanceF*math.Log(1-target) - float64(total)) / rateTotal
				line += fmt.Sprintf("[%.0f%% in %s]", target*100, formatDuration(etaSeconds))
			}
		}
	}

	return line + "          "
}

// nextETATarget returns the first threshold in etaTargets exceeding prob,
// or ok=false once prob has passed every threshold.
func nextETATarget(prob float64) (target float64, ok bool) {
	for _, t := range etaTargets {
		if prob < t {
			return t, true
		}
	}
	return 0, false
}

// formatDuration renders seconds using an s → min → h → d → y cascade,
// switching units only once the value would otherwise exceed the next
// unit's span.
func formatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "?"
	}
	const (
		minute = 60.0
		hour   = 60.0 * minute
		day    = 24.0 * hour
		year   = 365.0 * day
	)
	switch {
	case seconds < minute:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < hour:
		return fmt.Sprintf("%.1fmin", seconds/minute)
	case seconds < day:
		return fmt.Sprintf("%.1fh", seconds/hour)
	case seconds < year:
		return fmt.Sprintf("%.1fd", seconds/day)
	default:
		return fmt.Sprintf("%.1fy", seconds/year)
	}
}
