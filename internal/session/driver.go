package session

import (
	"context"
	"time"
)

// Driver serializes input events and timer ticks onto one Session. Only the
// goroutine running Run touches the session.
type Driver struct {
	session *Session
}

// NewDriver wraps s.
func NewDriver(s *Session) *Driver {
	return &Driver{session: s}
}

// Run applies inputs and ticks in arrival order and publishes a View after
// every change, starting with the initial state. It returns nil once the
// session is finished (after publishing the final view) or inputs is closed,
// and ctx.Err() when ctx is done.
func (d *Driver) Run(ctx context.Context, inputs <-chan string, ticks <-chan time.Time, publish func(View)) error {
	publish(d.session.View())
	if d.session.State() == Finished {
		return nil
	}
	for {
		var changed bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case value, ok := <-inputs:
			if !ok {
				return nil
			}
			changed = d.session.Input(value)
		case <-ticks:
			changed = d.session.Tick()
		}
		if changed {
			publish(d.session.View())
		}
		if d.session.State() == Finished {
			return nil
		}
	}
}

// RunWithTicker is Run driven by a ticker at interval; the ticker is stopped
// when Run returns.
func (d *Driver) RunWithTicker(ctx context.Context, inputs <-chan string, interval time.Duration, publish func(View)) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	return d.Run(ctx, inputs, ticker.C, publish)
}
