package client

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// pollScheduler drives one document job from queued/translating to a
// terminal state. Polling is a liveness check, not failure recovery:
// transient failures of a single status call are the retry policy's
// business, interval growth here only limits staleness vs request load.
type pollScheduler struct {
	initial time.Duration
	min     time.Duration
	max     time.Duration
	growth  float64
	maxWait time.Duration // 0 = wait forever
	sleep   sleepFunc
	logger  zerolog.Logger
}

// nextInterval picks the delay before the following poll. A server
// estimate of seconds remaining pins the interval to half the estimate,
// clamped to [min, max]; without one the interval grows multiplicatively
// up to the cap.
func (s *pollScheduler) nextInterval(current time.Duration, secondsRemaining *int) time.Duration {
	if secondsRemaining != nil {
		d := time.Duration(*secondsRemaining) * time.Second / 2
		if d < s.min {
			d = s.min
		}
		if d > s.max {
			d = s.max
		}
		return d
	}

	grown := time.Duration(float64(current) * s.growth)
	if grown > s.max {
		grown = s.max
	}
	if grown < s.min {
		grown = s.min
	}
	return grown
}

// run polls the job until it reaches done or error, the overall wait
// deadline elapses, or the context is cancelled. A deadline only stops
// the client from waiting; the server-side job keeps running. The
// scheduler itself checks cancellation at iteration boundaries, and the
// context also flows into each status call.
func (s *pollScheduler) run(ctx context.Context, job *documentJob) (*DocumentStatus, error) {
	start := time.Now()
	interval := s.initial
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for {
		status, err := job.poll(ctx)
		if err != nil {
			return nil, err
		}

		if status.Status == DocumentStateDone {
			return status, nil
		}

		s.logger.Debug().
			Str("document_id", status.DocumentID).
			Str("status", string(status.Status)).
			Dur("elapsed", time.Since(start)).
			Msg("document not ready")

		interval = s.nextInterval(interval, status.SecondsRemaining)

		if s.maxWait > 0 && time.Since(start)+interval > s.maxWait {
			err := &TimeoutError{Operation: "document translation", Elapsed: time.Since(start)}
			job.fail(err)
			return nil, err
		}

		if err := s.sleep(ctx, interval); err != nil {
			err = fmt.Errorf("waiting for document translation cancelled: %w", err)
			job.fail(err)
			return nil, err
		}
	}
}
