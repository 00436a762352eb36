package riot

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError reports that the upstream has no record of the requested
// resource (unknown riot id, or a match that was remade and purged).
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found upstream", e.Resource, e.Key)
}

// IsNotFound checks if an error is an upstream not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RateLimitError reports an upstream 429 with the server-supplied retry delay.
// It never escapes the Scheduler: Schedule absorbs it and retries the
// operation after the delay.
type RateLimitError struct {
	// RetryAfter is how long the server asked us to back off.
	// Zero when the response carried no Retry-After header.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited by upstream (retry after %v)", e.RetryAfter)
	}
	return "rate limited by upstream"
}

// IsRateLimited checks if an error is an upstream rate-limit rejection.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// AsRateLimited extracts a RateLimitError from an error if present.
func AsRateLimited(err error) *RateLimitError {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl
	}
	return nil
}

// UpstreamError covers every other non-2xx upstream response. Not retried.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}
