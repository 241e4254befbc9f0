// Package states provides a slow source of US state names.
package states

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultDelay is a latency of Source.Fetch.
const DefaultDelay = time.Second

var names = [...]string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California",
	"Colorado", "Connecticut", "Delaware", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland",
	"Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri",
	"Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey",
	"New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina",
	"South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
	"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// Source emulates a slow upstream returning state names.
type Source struct {
	// Delay is a latency of Fetch, DefaultDelay is used if zero, negative disables delay.
	Delay time.Duration

	calls int64
}

// Fetch waits for Delay and returns a fresh list of states.
func (s *Source) Fetch(ctx context.Context) ([]string, error) {
	atomic.AddInt64(&s.calls, 1)

	delay := s.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()

		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	res := make([]string, len(names))
	copy(res, names[:])

	return res, nil
}

// Calls returns number of Fetch invocations.
func (s *Source) Calls() int {
	return int(atomic.LoadInt64(&s.calls))
}

// IndexOf returns position of name in list or -1.
func IndexOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}

	return -1
}
