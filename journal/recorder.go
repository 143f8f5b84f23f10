package journal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/mousemacro/engine"
	"github.com/teranos/mousemacro/internal/util"
	"github.com/teranos/mousemacro/logger"
)

// writeTimeout bounds each journal write so a locked database cannot stall
// the service's completion path for long.
const writeTimeout = 2 * time.Second

// Recorder writes engine runs to a Store. Storage failures are logged and
// never reach the engine.
type Recorder struct {
	store *Store
	log   *zap.SugaredLogger
}

var _ engine.RunObserver = (*Recorder)(nil)

// NewRecorder creates a recorder. log may be nil.
func NewRecorder(store *Store, log *zap.SugaredLogger) *Recorder {
	return &Recorder{store: store, log: logger.AddDBSymbol(logger.OrNop(log))}
}

func (r *Recorder) RunStarted(info engine.RunInfo) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	req := info.Request
	run := &Run{
		ID:             info.ID,
		MacroName:      req.Point.Name,
		Button:         req.Action.Button.String(),
		ClickCount:     req.Action.ClickCount,
		HoldMS:         req.Action.Hold.Milliseconds(),
		PositionPolicy: req.Position.String(),
		RepeatCount:    req.RepeatCount,
		Status:         StatusRunning,
		StartedAt:      info.StartedAt,
	}
	if err := r.store.CreateRun(ctx, run); err != nil {
		r.log.Warnw("Failed to journal run start", logger.FieldRunID, info.ID, logger.FieldError, err)
		return
	}
	r.log.Debugw("Journaled run start", logger.FieldRunID, info.ID)
}

func (r *Recorder) RunFinished(info engine.RunInfo, summary engine.RunSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var errMsg *string
	if summary.Err != nil {
		errMsg = util.Ptr(util.Truncate(summary.Err.Error(), maxErrorMessage))
	}

	err := r.store.FinishRun(ctx, info.ID, StatusOf(summary.Reason), summary.Executed, errMsg,
		summary.FinishedAt, summary.Duration())
	if err != nil {
		r.log.Warnw("Failed to journal run finish", logger.FieldRunID, info.ID, logger.FieldError, err)
		return
	}
	r.log.Debugw("Journaled run finish", logger.FieldRunID, info.ID, logger.FieldStatus, string(StatusOf(summary.Reason)))
}

// StatusOf maps an engine exit reason to its stored status.
func StatusOf(reason engine.ExitReason) Status {
	switch reason {
	case engine.ReasonCompleted:
		return StatusCompleted
	case engine.ReasonStopped:
		return StatusStopped
	case engine.ReasonFailed:
		return StatusFailed
	}
	return StatusFailed
}
