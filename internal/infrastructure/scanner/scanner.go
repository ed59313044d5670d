// Package scanner fans a descriptor batch out over a bounded worker pool
// and collects one probe outcome per descriptor.
package scanner

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"sonar/internal/domain/descriptor"
	"sonar/internal/infrastructure/probe"
	"sonar/internal/shared/logger"
)

// Scanner runs probes concurrently with a hard ceiling on probes in flight.
type Scanner struct {
	prober probe.Prober
	log    logger.Interface
}

// New creates a scanner backed by the given prober.
func New(prober probe.Prober, log logger.Interface) *Scanner {
	return &Scanner{prober: prober, log: log}
}

type task struct {
	idx int
	d   descriptor.Descriptor
}

// Scan probes every descriptor and returns exactly one result per
// descriptor, in input order. At most concurrency probes run at once; the
// pool lives only for the duration of the call. A probe that cannot be
// scheduled or that panics is recorded as a failed result, never dropped.
func (s *Scanner) Scan(ctx context.Context, list []descriptor.Descriptor, timeout time.Duration, concurrency int) ([]descriptor.ScanResult, error) {
	if len(list) == 0 {
		return nil, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(list) {
		concurrency = len(list)
	}

	results := make([]descriptor.ScanResult, len(list))

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(concurrency, func(item interface{}) {
		defer wg.Done()
		t := item.(task)
		results[t.idx] = descriptor.ScanResult{
			Descriptor: t.d,
			Outcome:    s.safeProbe(ctx, t.d, timeout),
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create probe pool: %w", err)
	}
	defer pool.Release()

	for i, d := range list {
		wg.Add(1)
		if invokeErr := pool.Invoke(task{idx: i, d: d}); invokeErr != nil {
			wg.Done()
			results[i] = descriptor.ScanResult{
				Descriptor: d,
				Outcome: descriptor.Outcome{
					ElapsedMS: timeout.Milliseconds(),
					Error:     "probe not scheduled: " + invokeErr.Error(),
				},
			}
		}
	}
	wg.Wait()

	return results, nil
}

// safeProbe shields the scan from a panicking prober: the panic becomes a
// failed outcome charged with the full timeout.
func (s *Scanner) safeProbe(ctx context.Context, d descriptor.Descriptor, timeout time.Duration) (out descriptor.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorw("probe panicked",
				"addr", d.Addr(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			out = descriptor.Outcome{
				ElapsedMS: timeout.Milliseconds(),
				Error:     fmt.Sprintf("probe panic: %v", r),
			}
		}
	}()
	return s.prober.Probe(ctx, d, timeout)
}
