package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mousemacro/capture"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/hook"
	"github.com/teranos/mousemacro/macro"
)

// chanDriver delivers whatever the test pushes into events.
type chanDriver struct {
	events  chan hook.Event
	failure error
}

func (d *chanDriver) Start() (<-chan hook.Event, error) {
	if d.failure != nil {
		return nil, d.failure
	}
	return d.events, nil
}

func (d *chanDriver) Stop() {}

func TestAwaitCapture_Click(t *testing.T) {
	driver := &chanDriver{events: make(chan hook.Event, 1)}
	captor := capture.NewCaptor(hook.NewHub(driver, nil), nil)
	defer captor.Close()

	go func() {
		for !captor.Pending() {
			time.Sleep(time.Millisecond)
		}
		driver.events <- hook.Event{Kind: hook.EventMouseClick, X: 3, Y: 4, Button: macro.ButtonLeft}
	}()

	var out bytes.Buffer
	require.NoError(t, awaitCapture(context.Background(), captor, time.Minute, &out))
	assert.Contains(t, out.String(), "Captured (3,4)")
	assert.Contains(t, out.String(), "mousemacro run --x 3 --y 4")
}

func TestAwaitCapture_ContextCancels(t *testing.T) {
	driver := &chanDriver{events: make(chan hook.Event)}
	captor := capture.NewCaptor(hook.NewHub(driver, nil), nil)
	defer captor.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, awaitCapture(ctx, captor, time.Minute, &out))
	assert.Contains(t, out.String(), "Capture cancelled")
	assert.False(t, captor.Pending())
}

func TestAwaitCapture_HookUnavailable(t *testing.T) {
	driver := &chanDriver{failure: errors.Wrap(errors.ErrUnsupported, "global input hook")}
	captor := capture.NewCaptor(hook.NewHub(driver, nil), nil)
	defer captor.Close()

	err := awaitCapture(context.Background(), captor, time.Minute, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture failed")
	assert.Contains(t, errors.FlattenHints(err), "-tags native")
}

func TestPrintCaptureResult_Timeout(t *testing.T) {
	err := printCaptureResult(&bytes.Buffer{}, capture.Timeout())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
