package riot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestSchedule_RetriesAfterRateLimit tests that a rate-limited operation is
// retried after the signaled delay and never fails the caller.
func TestSchedule_RetriesAfterRateLimit(t *testing.T) {
	sched := NewScheduler(1000, 1000, 5)

	var calls int32
	start := time.Now()
	err := sched.Schedule(context.Background(), func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return &RateLimitError{RetryAfter: 150 * time.Millisecond}
		}
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected success after retry, got: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
	if elapsed < 150*time.Millisecond {
		t.Errorf("expected at least 150ms before retry, got %v", elapsed)
	}
}

// TestSchedule_PropagatesOtherErrors tests that non-rate-limit errors are
// returned without retrying.
func TestSchedule_PropagatesOtherErrors(t *testing.T) {
	sched := NewScheduler(1000, 1000, 5)

	opErr := errors.New("boom")
	var calls int32
	err := sched.Schedule(context.Background(), func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return opErr
	})

	if !errors.Is(err, opErr) {
		t.Fatalf("expected op error, got: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly 1 call, got %d", got)
	}
}

// TestSchedule_CancelDuringBackoff tests that context cancellation interrupts
// the rate-limit wait.
func TestSchedule_CancelDuringBackoff(t *testing.T) {
	sched := NewScheduler(1000, 1000, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var calls int32
	err := sched.Schedule(ctx, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return &RateLimitError{RetryAfter: 5 * time.Second}
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly 1 call before cancellation, got %d", got)
	}
}

// TestSchedule_CapsInFlightRequests tests that no more than maxInFlight
// admitted operations run concurrently.
func TestSchedule_CapsInFlightRequests(t *testing.T) {
	const maxInFlight = 2
	sched := NewScheduler(10000, 10000, maxInFlight)

	var current, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sched.Schedule(context.Background(), func(ctx context.Context) error {
				n := atomic.AddInt32(&current, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt32(&current, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&peak); got > maxInFlight {
		t.Errorf("expected at most %d concurrent operations, observed %d", maxInFlight, got)
	}
}

// TestSchedule_RespectsRefillRate tests that admissions are spaced by the
// reservoir refill rate once the burst is spent.
func TestSchedule_RespectsRefillRate(t *testing.T) {
	// 20 requests/second with burst 1: three calls need ~100ms of refill.
	sched := NewScheduler(20, 1, 3)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := sched.Schedule(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 90*time.Millisecond {
		t.Errorf("expected rate limiting to space calls, 3 calls took %v", elapsed)
	}
}
