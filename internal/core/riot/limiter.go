package riot

import (
	"context"
	"sync"
	"time"

	"arena-stats/internal/shared/logs"

	"golang.org/x/time/rate"
)

// defaultRetryAfter is used when a 429 carries no Retry-After header.
const defaultRetryAfter = time.Second

// Scheduler admits every upstream call through a shared token reservoir.
// One instance is constructed per process and handed to all client
// operations, so the whole service draws on a single rate budget.
//
// Admission is strictly FIFO: a mutex serializes the reservoir wait, so
// operations are admitted in the order they arrive. Completion order is not
// guaranteed; up to maxInFlight admitted requests may run concurrently.
type Scheduler struct {
	limiter *rate.Limiter
	admitMu sync.Mutex
	sem     chan struct{}
}

// NewScheduler builds a scheduler with the given reservoir refill rate,
// burst capacity, and in-flight cap.
func NewScheduler(requestsPerSecond float64, burst, maxInFlight int) *Scheduler {
	if burst < 1 {
		burst = 1
	}
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Scheduler{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		sem:     make(chan struct{}, maxInFlight),
	}
}

// Schedule runs op under the shared rate budget. op must perform exactly one
// upstream call. When the upstream rejects with a rate-limit response, the
// scheduler waits out the signaled delay and re-admits the same operation;
// that condition never fails the request. Every other error, and context
// cancellation, propagates unchanged.
func (s *Scheduler) Schedule(ctx context.Context, op func(context.Context) error) error {
	for {
		if err := s.admit(ctx); err != nil {
			return err
		}

		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
		err := op(ctx)
		<-s.sem

		rl := AsRateLimited(err)
		if rl == nil {
			return err
		}

		delay := rl.RetryAfter
		if delay <= 0 {
			delay = defaultRetryAfter
		}
		logs.Warn("upstream rate limit hit, delaying retry", "retry_after", delay)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// admit blocks until a reservoir token is available. The mutex keeps
// admission order equal to arrival order.
func (s *Scheduler) admit(ctx context.Context) error {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()
	return s.limiter.Wait(ctx)
}
