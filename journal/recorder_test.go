package journal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/mousemacro/engine"
	"github.com/teranos/mousemacro/errors"
	mmtest "github.com/teranos/mousemacro/internal/testing"
	"github.com/teranos/mousemacro/macro"
)

func testRequest(t *testing.T, repeat int) macro.Request {
	t.Helper()
	point, err := macro.NewMacroPoint("farm", macro.Point{X: 10, Y: 10}, macro.Exact{})
	require.NoError(t, err)
	delay, err := macro.FixedDelay(time.Millisecond)
	require.NoError(t, err)
	req, err := macro.NewRequest(point, macro.DoubleLeft(), nil, delay, nil, mmtest.NewScriptedRandom(), repeat)
	require.NoError(t, err)
	return req
}

func TestRecorder_JournalsServiceRun(t *testing.T) {
	store := setupStore(t)
	rec := NewRecorder(store, zaptest.NewLogger(t).Sugar())

	exec := engine.ExecutorFunc(func(context.Context, macro.ClickAction, macro.Point) error { return nil })
	svc := engine.NewService(exec, engine.DefaultConfig(), nil,
		engine.WithObserver(rec),
		engine.WithIDGenerator(func() string { return "run-42" }))

	require.NoError(t, svc.Start(testRequest(t, 4)))
	select {
	case <-svc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("run did not finish")
	}

	run, err := store.GetRun(context.Background(), "run-42")
	require.NoError(t, err)
	assert.Equal(t, "farm", run.MacroName)
	assert.Equal(t, 2, run.ClickCount)
	assert.Equal(t, "exact", run.PositionPolicy)
	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, 4, run.ClicksExecuted)
	assert.Nil(t, run.ErrorMessage)
	require.NotNil(t, run.FinishedAt)
	require.NotNil(t, run.DurationMS)
}

func TestRecorder_TruncatesErrorMessage(t *testing.T) {
	store := setupStore(t)
	rec := NewRecorder(store, nil)
	started := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	info := engine.RunInfo{ID: "run-1", Request: testRequest(t, 1), StartedAt: started}
	rec.RunStarted(info)
	rec.RunFinished(info, engine.RunSummary{
		Reason:     engine.ReasonFailed,
		Err:        errors.New(strings.Repeat("x", 5000)),
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	})

	run, err := store.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
	assert.Len(t, []rune(*run.ErrorMessage), maxErrorMessage)
}

func TestRecorder_SwallowsStorageErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec(`INSERT INTO macro_runs`).WillReturnError(errors.New("database is locked"))
	mock.ExpectExec(`UPDATE macro_runs`).WillReturnError(errors.New("database is locked"))

	rec := NewRecorder(NewStore(conn), zaptest.NewLogger(t).Sugar())
	info := engine.RunInfo{ID: "run-1", Request: testRequest(t, 1), StartedAt: time.Now()}

	assert.NotPanics(t, func() {
		rec.RunStarted(info)
		rec.RunFinished(info, engine.RunSummary{Reason: engine.ReasonStopped})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusCompleted, StatusOf(engine.ReasonCompleted))
	assert.Equal(t, StatusStopped, StatusOf(engine.ReasonStopped))
	assert.Equal(t, StatusFailed, StatusOf(engine.ReasonFailed))
	assert.Equal(t, StatusFailed, StatusOf(engine.ExitReason("bogus")))
}
