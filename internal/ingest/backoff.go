package ingest

import (
	"math/rand"
	"time"
)

// nextDelay computes how long a job must wait before its next attempt:
// base * 2^attempts, jittered by up to one base interval in either
// direction so a burst of failures does not retry in lockstep. The runner
// only records the resulting eligibility time; the scheduler does the
// waiting.
func nextDelay(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		base = DefaultBackoffBase
	}
	shift := attempts
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}

	delay := base << shift
	jitter := time.Duration(rand.Int63n(int64(base)))
	if rand.Intn(2) == 0 {
		jitter = -jitter
	}

	delay += jitter
	if delay < base {
		delay = base
	}
	return delay
}
