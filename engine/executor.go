package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/input"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/macro"
)

// ClickExecutor performs one tick's click action at a resolved coordinate.
// ctx is cancelled when the run is stopped; long actions (holds) should honour it.
type ClickExecutor interface {
	Execute(ctx context.Context, action macro.ClickAction, at macro.Point) error
}

// ExecutorFunc adapts a function to ClickExecutor.
type ExecutorFunc func(ctx context.Context, action macro.ClickAction, at macro.Point) error

func (f ExecutorFunc) Execute(ctx context.Context, action macro.ClickAction, at macro.Point) error {
	return f(ctx, action, at)
}

// DryRunExecutor logs clicks instead of performing them.
type DryRunExecutor struct {
	log *zap.SugaredLogger
}

func NewDryRunExecutor(log *zap.SugaredLogger) *DryRunExecutor {
	return &DryRunExecutor{log: logger.AddPulseSymbol(logger.OrNop(log))}
}

func (d *DryRunExecutor) Execute(ctx context.Context, action macro.ClickAction, at macro.Point) error {
	logger.FromContext(ctx, d.log).Infow("Dry-run click",
		logger.FieldButton, action.Button.String(),
		logger.FieldClicks, action.ClickCount,
		logger.FieldHold, action.Hold,
		logger.FieldResolved, at.String())
	return nil
}

// Gap between press/release pairs of a multi-click
const multiClickGap = 20 * time.Millisecond

// RobotExecutor drives a physical mouse: move, then either hold or click N times.
type RobotExecutor struct {
	mouse input.Mouse
	gap   time.Duration
}

func NewRobotExecutor(mouse input.Mouse) *RobotExecutor {
	return &RobotExecutor{mouse: mouse, gap: multiClickGap}
}

func (r *RobotExecutor) Execute(ctx context.Context, action macro.ClickAction, at macro.Point) error {
	if err := r.mouse.Move(at); err != nil {
		return errors.Wrapf(err, "move to %s", at)
	}

	if action.IsHold() {
		if err := r.mouse.Press(action.Button); err != nil {
			return errors.Wrapf(err, "press %s", action.Button)
		}
		// A stopped run cuts the hold short, but the button is always released.
		sleepCtx(ctx, action.Hold)
		return errors.Wrapf(r.mouse.Release(action.Button), "release %s", action.Button)
	}

	for i := 0; i < action.ClickCount; i++ {
		if err := r.mouse.Press(action.Button); err != nil {
			return errors.Wrapf(err, "press %s", action.Button)
		}
		if err := r.mouse.Release(action.Button); err != nil {
			return errors.Wrapf(err, "release %s", action.Button)
		}
		if i+1 < action.ClickCount && !sleepCtx(ctx, r.gap) {
			return nil
		}
	}
	return nil
}

// RateLimitedExecutor caps how many actions per second reach the wrapped executor.
// Execute blocks until a token is available or ctx is done.
type RateLimitedExecutor struct {
	next    ClickExecutor
	limiter *rate.Limiter
}

// NewRateLimitedExecutor wraps next. perSecond <= 0 disables limiting and returns next unchanged.
func NewRateLimitedExecutor(next ClickExecutor, perSecond float64, burst int) ClickExecutor {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedExecutor{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (r *RateLimitedExecutor) Execute(ctx context.Context, action macro.ClickAction, at macro.Point) error {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, "click rate limiter")
	}
	return r.next.Execute(ctx, action, at)
}

// sleepCtx waits for d or until ctx is done; it reports whether the full wait elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
