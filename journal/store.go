// Package journal keeps a history of macro runs in SQLite.
// It records what ran and how it ended; macro definitions themselves are not stored.
package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/teranos/mousemacro/errors"
)

// Status is the stored outcome of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusStopped   Status = "stopped"
	StatusFailed    Status = "failed"
)

// maxErrorMessage caps the stored error text.
const maxErrorMessage = 1024

// DefaultListLimit applies when ListRuns is called with a non-positive limit.
const DefaultListLimit = 20

// Run is one row of macro_runs.
type Run struct {
	ID             string     `json:"id" db:"id"`
	MacroName      string     `json:"macro_name" db:"macro_name"`
	Button         string     `json:"button" db:"button"`
	ClickCount     int        `json:"click_count" db:"click_count"`
	HoldMS         int64      `json:"hold_ms" db:"hold_ms"`
	PositionPolicy string     `json:"position_policy" db:"position_policy"`
	RepeatCount    int        `json:"repeat_count" db:"repeat_count"`
	Status         Status     `json:"status" db:"status"`
	ClicksExecuted int        `json:"clicks_executed" db:"clicks_executed"`
	ErrorMessage   *string    `json:"error_message,omitempty" db:"error_message"`
	StartedAt      time.Time  `json:"started_at" db:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	DurationMS     *int64     `json:"duration_ms,omitempty" db:"duration_ms"`
}

// Store reads and writes macro_runs.
type Store struct {
	db *sql.DB
}

// NewStore wraps a migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateRun inserts a run in the running state.
func (s *Store) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return errors.NewInvalidArgumentError("run id must not be empty")
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}

	query := `
		INSERT INTO macro_runs (
			id, macro_name, button, click_count, hold_ms, position_policy,
			repeat_count, status, clicks_executed, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.MacroName, run.Button, run.ClickCount, run.HoldMS, run.PositionPolicy,
		run.RepeatCount, string(run.Status), run.ClicksExecuted, run.StartedAt.UTC(),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert run %s", run.ID)
	}
	return nil
}

// FinishRun records the outcome of a run. errMsg may be nil.
func (s *Store) FinishRun(ctx context.Context, id string, status Status, executed int, errMsg *string, finishedAt time.Time, duration time.Duration) error {
	query := `
		UPDATE macro_runs
		SET status = ?, clicks_executed = ?, error_message = ?, finished_at = ?, duration_ms = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		string(status), executed, errMsg, finishedAt.UTC(), duration.Milliseconds(), id)
	if err != nil {
		return errors.Wrapf(err, "failed to finish run %s", id)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to check update of run %s", id)
	}
	if n == 0 {
		return errors.NewNotFoundError("run %s not found", id)
	}
	return nil
}

const selectRun = `
	SELECT id, macro_name, button, click_count, hold_ms, position_policy,
	       repeat_count, status, clicks_executed, error_message,
	       started_at, finished_at, duration_ms
	FROM macro_runs`

// GetRun loads a single run.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("run %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load run %s", id)
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate runs")
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		status     string
		errMsg     sql.NullString
		finishedAt sql.NullTime
		durationMS sql.NullInt64
	)
	err := row.Scan(
		&run.ID, &run.MacroName, &run.Button, &run.ClickCount, &run.HoldMS, &run.PositionPolicy,
		&run.RepeatCount, &status, &run.ClicksExecuted, &errMsg,
		&run.StartedAt, &finishedAt, &durationMS,
	)
	if err != nil {
		return nil, err
	}

	run.Status = Status(status)
	if errMsg.Valid {
		run.ErrorMessage = &errMsg.String
	}
	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	if durationMS.Valid {
		run.DurationMS = &durationMS.Int64
	}
	return &run, nil
}
