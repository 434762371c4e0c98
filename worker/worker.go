package worker

import (
	"context"
	"time"
)

// Worker a long-running background job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs onWork in a loop. A run that returns an error backs off
// for ErrDelay before the next tick; a clean run waits Delay.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick tick until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = time.Second
	}

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := onWork(ctx); err != nil {
				dur = errDelay
			} else {
				dur = delay
			}
		}
	}
}
