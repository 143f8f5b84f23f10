package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/macro"
)

// Smallest wait between ticks; a zero delay must not turn the loop into a spin.
const minTickSleep = time.Millisecond

// ExitReason says why a run's loop ended.
type ExitReason string

const (
	ReasonCompleted ExitReason = "completed"
	ReasonStopped   ExitReason = "stopped"
	ReasonFailed    ExitReason = "failed"
)

// RunSummary is reported once when a run's loop exits.
type RunSummary struct {
	Executed   int
	Reason     ExitReason
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is the wall time the loop was alive.
func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// runner owns the background loop of a single run. A new runner is built for
// every Start; its stop signal is one-way.
type runner struct {
	req  macro.Request
	exec ClickExecutor
	cfg  Config
	log  *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc

	paused   atomic.Bool
	executed atomic.Int64
	wake     chan struct{}
	done     chan struct{}

	onComplete func(RunSummary)
}

func newRunner(runID string, req macro.Request, exec ClickExecutor, cfg Config, log *zap.SugaredLogger, onComplete func(RunSummary)) *runner {
	ctx, cancel := context.WithCancel(logger.WithComponent(logger.WithRunID(context.Background(), runID), "runner"))
	return &runner{
		req:        req,
		exec:       exec,
		cfg:        cfg,
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		onComplete: onComplete,
	}
}

func (r *runner) start() {
	go r.loop()
}

// requestStop interrupts any wait immediately. Safe to call repeatedly.
func (r *runner) requestStop() {
	r.cancel()
}

func (r *runner) pause() {
	r.paused.Store(true)
}

// resume clears the pause flag, then pokes an idle-waiting loop.
func (r *runner) resume() {
	r.paused.Store(false)
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *runner) executedCount() int {
	return int(r.executed.Load())
}

func (r *runner) loop() {
	summary := RunSummary{StartedAt: r.cfg.Now()}

	defer func() {
		if p := recover(); p != nil {
			summary.Reason = ReasonFailed
			summary.Err = errors.Newf("macro loop panicked: %v", p)
			r.log.Errorw("Macro loop panicked", "panic", fmt.Sprint(p), logger.FieldExecuted, summary.Executed)
		}
		r.cancel()
		summary.FinishedAt = r.cfg.Now()
		r.onComplete(summary)
		close(r.done)
	}()

	r.run(&summary)
}

func (r *runner) run(s *RunSummary) {
	failures := 0

	for {
		if r.ctx.Err() != nil {
			s.Reason = ReasonStopped
			return
		}

		if r.paused.Load() {
			r.idle(r.cfg.PausePoll)
			continue
		}

		if !r.req.Schedule.Allowed(macro.TimeOfDayOf(r.cfg.Now())) {
			r.idle(r.cfg.SchedulePoll)
			continue
		}

		at := r.req.Position.Resolve(r.req.Point.Base, r.req.Random)
		if err := r.exec.Execute(r.ctx, r.req.Action, at); err != nil {
			if r.ctx.Err() != nil {
				s.Reason = ReasonStopped
				return
			}
			failures++
			r.log.Warnw("Click failed",
				logger.FieldResolved, at.String(),
				logger.FieldFailures, failures,
				logger.FieldError, err)
			if failures >= r.cfg.MaxConsecutiveFailures {
				s.Reason = ReasonFailed
				s.Err = errors.Wrapf(err, "aborting after %d consecutive click failures", failures)
				return
			}
		} else {
			failures = 0
			s.Executed++
			r.executed.Store(int64(s.Executed))
			r.log.Debugw("Click executed",
				logger.FieldResolved, at.String(),
				logger.FieldExecuted, s.Executed)

			if r.req.RepeatCount > 0 && s.Executed >= r.req.RepeatCount {
				s.Reason = ReasonCompleted
				return
			}
		}

		r.sleep(r.req.Delay.Resolve(r.req.Random))
	}
}

// idle waits for d, a stop, or a resume poke.
func (r *runner) idle(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-r.ctx.Done():
	case <-r.wake:
	case <-t.C:
	}
}

// sleep waits for d or a stop.
func (r *runner) sleep(d time.Duration) {
	sleepCtx(r.ctx, max(d, minTickSleep))
}
