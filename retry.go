package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// retryableError marks an attempt outcome that may succeed if the same
// call is reattempted later. delayHint carries a server-provided
// retry-after duration when one was present and sane.
type retryableError struct {
	err       error
	delayHint time.Duration
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// sleepFunc is a cancelable delay. Injected so tests can run retry and
// poll loops with zero elapsed wall-clock time.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryPolicy reattempts a single logical operation (one upload, one
// status poll, one download) on retryable failures. Attempt counters
// live on the stack of one execute call and reset only at operation
// boundaries.
type retryPolicy struct {
	maxAttempts int
	backoffMin  time.Duration
	backoffMax  time.Duration
	deadline    time.Duration // 0 = no overall deadline
	sleep       sleepFunc
	jitter      func() float64
	logger      zerolog.Logger
}

// delay computes the backoff before the next attempt. A sane server
// hint wins; otherwise exponential backoff clamped to
// [backoffMin, backoffMax], plus jitter in [0, delay/2) so concurrent
// jobs do not synchronize their retries.
func (p *retryPolicy) delay(attempt int, hint time.Duration) time.Duration {
	if hint > 0 && hint <= p.backoffMax {
		return hint
	}

	d := p.backoffMin << attempt
	if d > p.backoffMax || d <= 0 {
		d = p.backoffMax
	}
	if d < p.backoffMin {
		d = p.backoffMin
	}

	return d + time.Duration(p.jitter()*float64(d)/2)
}

// execute runs attempt until classify reports success or a fatal error,
// sleeping between retryable failures. attempt rebuilds its request on
// every call so retried bodies are sent fresh.
func executeWithRetry[T any](
	ctx context.Context,
	p *retryPolicy,
	operation string,
	attempt func(ctx context.Context) (*response, error),
	classify func(*response) (*T, error),
) (*T, error) {
	start := time.Now()

	var lastErr error
	var lastHint time.Duration
	rateLimited := false

	for n := 0; n < p.maxAttempts; n++ {
		if n > 0 {
			if p.deadline > 0 && time.Since(start) >= p.deadline {
				return nil, &TimeoutError{Operation: operation, Elapsed: time.Since(start)}
			}
			d := p.delay(n-1, lastHint)
			p.logger.Debug().
				Str("operation", operation).
				Int("attempt", n).
				Dur("backoff", d).
				Msg("retrying after failure")
			if err := p.sleep(ctx, d); err != nil {
				return nil, fmt.Errorf("%s interrupted: %w", operation, err)
			}
		}

		resp, err := attempt(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &ConnectionError{Operation: operation, Err: err}
			}
			// no response at all: retried like any connectivity failure
			lastErr = err
			lastHint = 0
			rateLimited = false
			continue
		}

		value, cerr := classify(resp)
		if cerr == nil {
			return value, nil
		}

		var re *retryableError
		if !errors.As(cerr, &re) {
			return nil, cerr
		}

		lastErr = re.err
		lastHint = re.delayHint
		rateLimited = isRateLimited(re.err)
	}

	if rateLimited {
		return nil, &TooManyRequestsError{Operation: operation, Attempts: p.maxAttempts}
	}

	var apiErr *APIError
	if errors.As(lastErr, &apiErr) {
		return nil, fmt.Errorf("%s: retries exhausted: %w", operation, lastErr)
	}
	return nil, &ConnectionError{Operation: operation, Err: lastErr}
}

func isRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// checkStatus maps an attempt's status code onto the retry taxonomy:
// nil for success, *retryableError for rate limiting and server-side
// trouble, a typed fatal error for everything the caller must see.
func checkStatus(operation string, resp *response) error {
	switch {
	case resp.status >= http.StatusOK && resp.status < http.StatusMultipleChoices:
		return nil
	case resp.status == http.StatusTooManyRequests:
		return &retryableError{
			err:       &APIError{Operation: operation, StatusCode: resp.status, Message: serverMessage(resp.body)},
			delayHint: retryAfterHint(resp.headers),
		}
	case resp.status == http.StatusUnauthorized || resp.status == http.StatusForbidden:
		return &AuthorizationError{Operation: operation, Message: serverMessage(resp.body)}
	case resp.status == StatusQuotaExceeded:
		return &QuotaExceededError{Message: serverMessage(resp.body)}
	case resp.status >= http.StatusInternalServerError:
		return &retryableError{
			err: &APIError{Operation: operation, StatusCode: resp.status, Message: serverMessage(resp.body)},
		}
	default:
		// bad request, not found and friends: never retried
		return &APIError{Operation: operation, StatusCode: resp.status, Message: serverMessage(resp.body)}
	}
}

// jsonClassifier builds a classify func that accepts a successful
// response and decodes its JSON body into T.
func jsonClassifier[T any](operation string) func(*response) (*T, error) {
	return func(resp *response) (*T, error) {
		if err := checkStatus(operation, resp); err != nil {
			return nil, err
		}
		var out T
		if err := json.Unmarshal(resp.body, &out); err != nil {
			return nil, fmt.Errorf("%s: decode response: %w", operation, err)
		}
		return &out, nil
	}
}

// rawClassifier builds a classify func that accepts a successful
// response and returns its body bytes untouched.
func rawClassifier(operation string) func(*response) (*[]byte, error) {
	return func(resp *response) (*[]byte, error) {
		if err := checkStatus(operation, resp); err != nil {
			return nil, err
		}
		body := resp.body
		return &body, nil
	}
}

// retryAfterHint parses a Retry-After header into a duration. Returns 0
// for absent or nonsense values; the caller falls back to backoff.
func retryAfterHint(headers http.Header) time.Duration {
	value := headers.Get("Retry-After")
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}

	return 0
}

func defaultJitter() float64 { return rand.Float64() }
