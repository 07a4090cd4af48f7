package socialimages

import (
	"context"
	"time"
)

// Settler blocks until the mutated document is ready to be captured.
type Settler interface {
	Settle(ctx context.Context) error
}

// FixedDelay waits a fixed amount of time, giving images and fonts requested
// by the last mutation a chance to load. There is no completion signal.
type FixedDelay time.Duration

func (d FixedDelay) Settle(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(time.Duration(d))
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
