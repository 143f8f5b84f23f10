// Package engine runs macros: a Service state machine (STOPPED, RUNNING,
// PAUSED) in front of a background runner that turns a macro.Request into
// timed, position-resolved clicks.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/macro"
)

// Config tunes the runner's polling and failure handling.
type Config struct {
	// PausePoll is how often a paused loop re-checks its flags.
	PausePoll time.Duration
	// SchedulePoll is how often a loop outside its time window re-checks the clock.
	SchedulePoll time.Duration
	// MaxConsecutiveFailures aborts a run after this many executor errors in a
	// row. Values below 1 abort on the first failure.
	MaxConsecutiveFailures int
	// Now is the clock used for schedules and summaries.
	Now func() time.Time
}

// DefaultConfig returns the stock polling intervals.
func DefaultConfig() Config {
	return Config{
		PausePoll:              50 * time.Millisecond,
		SchedulePoll:           200 * time.Millisecond,
		MaxConsecutiveFailures: 3,
		Now:                    time.Now,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PausePoll <= 0 {
		c.PausePoll = d.PausePoll
	}
	if c.SchedulePoll <= 0 {
		c.SchedulePoll = d.SchedulePoll
	}
	if c.Now == nil {
		c.Now = d.Now
	}
	return c
}

// RunInfo identifies one run.
type RunInfo struct {
	ID        string
	Request   macro.Request
	StartedAt time.Time
}

// RunObserver is told about every run exactly once at start and once at finish.
// Calls are made outside the service lock; they may block the caller briefly.
type RunObserver interface {
	RunStarted(info RunInfo)
	RunFinished(info RunInfo, summary RunSummary)
}

// Option configures a Service.
type Option func(*Service)

// WithObserver attaches a run observer.
func WithObserver(o RunObserver) Option {
	return func(s *Service) { s.observer = o }
}

// WithIDGenerator replaces the run ID source (UUIDv4 by default).
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

type run struct {
	runner   *runner
	info     RunInfo
	finished atomic.Bool
}

// Service is the single entry point for controlling macro runs.
// At most one run is active at a time; transitions are serialized by mu,
// which is only ever held for constant-time work.
type Service struct {
	exec     ClickExecutor
	cfg      Config
	log      *zap.SugaredLogger
	observer RunObserver
	newID    func() string

	mu      sync.Mutex
	status  macro.Status
	current *run
}

// NewService creates a stopped service. log may be nil.
func NewService(exec ClickExecutor, cfg Config, log *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		exec:   exec,
		cfg:    cfg.withDefaults(),
		log:    logger.OrNop(log),
		newID:  uuid.NewString,
		status: macro.StatusStopped,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches a run. It fails with an invalid-state error while a run is
// active and with an invalid-argument error for a malformed request; in both
// cases nothing changes.
func (s *Service) Start(req macro.Request) error {
	if err := req.Validate(); err != nil {
		return errors.Wrap(err, "start macro")
	}

	s.mu.Lock()
	if s.status.IsActive() {
		status := s.status
		s.mu.Unlock()
		return errors.NewInvalidStateError("cannot start: macro is already %s", status)
	}

	rn := &run{info: RunInfo{ID: s.newID(), Request: req, StartedAt: s.cfg.Now()}}
	runLog := logger.AddPulseSymbol(s.log).With(logger.FieldRunID, rn.info.ID)
	rn.runner = newRunner(rn.info.ID, req, s.exec, s.cfg, runLog, func(summary RunSummary) {
		s.complete(rn, summary)
	})
	s.current = rn
	s.status = macro.StatusRunning
	s.mu.Unlock()

	logger.AddPulseOpenSymbol(s.log).Infow("Macro started",
		logger.FieldRunID, rn.info.ID,
		logger.FieldMacro, req.Point.Name,
		logger.FieldPoint, req.Point.Base.String(),
		"action", req.Action.String(),
		"position", req.Position.String(),
		logger.FieldDelay, req.Delay.String(),
		"schedule", req.Schedule.String(),
		logger.FieldRepeat, req.RepeatCount)

	if s.observer != nil {
		s.observer.RunStarted(rn.info)
	}
	rn.runner.start()
	return nil
}

// Stop ends the active run, if any. It never fails and always leaves the
// service STOPPED.
func (s *Service) Stop() {
	s.mu.Lock()
	prev := s.status
	cur := s.current
	s.status = macro.StatusStopped
	s.mu.Unlock()

	if cur == nil || !prev.IsActive() {
		return
	}
	cur.runner.requestStop()
	s.log.Infow("Macro stop requested", logger.FieldRunID, cur.info.ID, logger.FieldFrom, prev.String())
}

// Pause suspends clicking. Only allowed while RUNNING.
func (s *Service) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != macro.StatusRunning {
		return errors.NewInvalidStateError("cannot pause: macro is %s", s.status)
	}
	s.current.runner.pause()
	s.status = macro.StatusPaused
	s.log.Infow("Macro paused", logger.FieldRunID, s.current.info.ID)
	return nil
}

// Resume continues a paused run. Only allowed while PAUSED.
func (s *Service) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != macro.StatusPaused {
		return errors.NewInvalidStateError("cannot resume: macro is %s", s.status)
	}
	s.current.runner.resume()
	s.status = macro.StatusRunning
	s.log.Infow("Macro resumed", logger.FieldRunID, s.current.info.ID)
	return nil
}

// TogglePause pauses a running macro or resumes a paused one.
func (s *Service) TogglePause() (macro.Status, error) {
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()

	// The status can change between the read and the transition; the
	// transition re-checks under the lock and reports invalid state if so.
	switch status {
	case macro.StatusRunning:
		return macro.StatusPaused, s.Pause()
	case macro.StatusPaused:
		return macro.StatusRunning, s.Resume()
	case macro.StatusStopped:
		return status, errors.NewInvalidStateError("cannot toggle pause: macro is %s", status)
	}
	return status, errors.AssertionFailedf("unknown status %d", int(status))
}

// Status returns the current lifecycle state.
func (s *Service) Status() macro.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Progress is a snapshot of the most recent run.
type Progress struct {
	Status   macro.Status
	Run      RunInfo
	Executed int
}

// Progress reports the current status and, when a run has been started, its
// info and click count. ok is false before the first Start.
func (s *Service) Progress() (p Progress, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Status = s.status
	if s.current == nil {
		return p, false
	}
	p.Run = s.current.info
	p.Executed = s.current.runner.executedCount()
	return p, true
}

// Done returns a channel closed when the most recent run's loop has exited.
// Before the first Start it is already closed.
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return s.current.runner.done
}

// Shutdown stops the active run and waits for its loop to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	s.Stop()
	select {
	case <-s.Done():
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting for macro loop to exit")
	}
}

// complete is the runner's exit callback. It moves the service to STOPPED
// only if rn is still the current run, so a late exit never clobbers a newer run.
func (s *Service) complete(rn *run, summary RunSummary) {
	s.mu.Lock()
	if s.current == rn {
		s.status = macro.StatusStopped
	}
	s.mu.Unlock()

	if !rn.finished.CompareAndSwap(false, true) {
		return
	}

	fields := []interface{}{
		logger.FieldRunID, rn.info.ID,
		logger.FieldReason, string(summary.Reason),
		logger.FieldExecuted, summary.Executed,
		logger.FieldDurationMS, summary.Duration().Milliseconds(),
	}
	closeLog := logger.AddPulseCloseSymbol(s.log)
	if summary.Err != nil {
		closeLog.Errorw("Macro finished", append(fields, logger.FieldError, summary.Err)...)
	} else {
		closeLog.Infow("Macro finished", fields...)
	}

	if s.observer != nil {
		s.observer.RunFinished(rn.info, summary)
	}
}
