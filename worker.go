package vanityforge

import (
	"math/big"
	"sync/atomic"
	"time"
)

// Telemetry sampling cadences: prefix-mode workers aggregate
// rate every 20,000 candidates, regex-mode workers every 10,000 — regex
// matching costs more per candidate (a full base58 encode), so a smaller
// batch keeps the status line responsive without adding lock contention.
const (
	prefixRekeyCap       = 1_000_000
	prefixTelemetryBatch = 20_000
	regexTelemetryBatch  = 10_000
)

// runWorker is one search worker's hot loop. It owns a live
// KeyPair it advances by repeated EC point addition, re-keying whenever
// it has run rekeyAt candidates against the current random scalar, and
// probes the context selected by co.mode on every candidate.
//
// Unlike the pseudocode's "k, npoints" split, KeyPair.Advance keeps the
// scalar and point in lock-step on every call (a cheap ModNScalar.Add
// next to the EC point addition it already pays for), so the worker
// never needs to separately reconstruct "k + npoints" on a match — kp
// always holds the exact private key for its current point.
func runWorker(id int, co *Coordinator, matches chan<- Match) {
	var kp *KeyPair
	var err error
	if co.mode == ModePrefix {
		kp, err = co.prefixCtx.Rekey()
	} else {
		kp, err = NewRandomKeyPair()
	}
	if err != nil {
		return
	}

	npoints := int64(0)
	rekeyAt := rekeyThreshold(kp)
	batch := 0
	batchSize := prefixTelemetryBatch
	if co.mode == ModeRegex {
		batchSize = regexTelemetryBatch
	}
	windowStart := time.Now()

	for {
		if (co.mode == ModePrefix && co.prefixCtx.Empty()) || (co.mode == ModeRegex && co.regexCtx.Empty()) {
			return
		}

		npoints++
		if npoints >= rekeyAt {
			if co.mode == ModePrefix {
				kp, err = co.prefixCtx.Rekey()
			} else {
				kp, err = NewRandomKeyPair()
			}
			if err != nil {
				return
			}
			npoints = 0
			rekeyAt = rekeyThreshold(kp)
		} else {
			kp.Advance()
		}

		pub := kp.UncompressedPublicKey()
		h160 := Hash160(pub)

		switch co.mode {
		case ModePrefix:
			// SolvePrefixRanges reasons over the full 25-byte versionByte ‖
			// hash160 ‖ checksum buffer, so the probe target must be
			// zero-extended past the 21-byte payload to the same 200-bit
			// scale (the 4 checksum bytes never affect which range a hash160
			// falls into, since every range boundary is checksum-agnostic).
			buf := append([]byte{co.addressVersion}, h160...)
			buf = append(buf, 0, 0, 0, 0)
			target := bigFromBytes(buf)
			pattern, retired := co.prefixCtx.Probe(target)
			if retired {
				matches <- NewMatch(pattern, kp, co.addressVersion, co.privateVersion)
				if co.prefixCtx.Empty() {
					return
				}
			}
		case ModeRegex:
			address := Address(co.addressVersion, pub)
			pattern, retired := co.regexCtx.Probe(address)
			if retired {
				matches <- NewMatch(pattern, kp, co.addressVersion, co.privateVersion)
				if co.regexCtx.Empty() {
					return
				}
			}
		}

		batch++
		if batch >= batchSize {
			elapsed := time.Since(windowStart).Seconds()
			rate := float64(batch)
			if elapsed > 0 {
				rate = float64(batch) / elapsed
			}
			total := atomic.AddInt64(&co.totalCandidates, int64(batch))
			batch = 0
			windowStart = time.Now()

			var chance *big.Float
			if co.mode == ModePrefix {
				chance = co.prefixCtx.Chance()
			}
			if line, ok := co.telemetry.Sample(id, rate, total, chance); ok {
				printStatusLine(line)
			}
		}
	}
}

// rekeyThreshold is min(1_000_000, order - scalar), the cap that keeps
// the scalar from wrapping before the next forced rekey.
func rekeyThreshold(kp *KeyPair) int64 {
	remaining := kp.RemainingUntilOverflow()
	cap := big.NewInt(prefixRekeyCap)
	if remaining.Cmp(cap) >= 0 {
		return prefixRekeyCap
	}
	if !remaining.IsInt64() {
		return prefixRekeyCap
	}
	return remaining.Int64()
}
