package macro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mousemacro/errors"
	mmtest "github.com/teranos/mousemacro/internal/testing"
)

func TestNewClickAction(t *testing.T) {
	tests := []struct {
		name    string
		button  Button
		count   int
		hold    time.Duration
		wantErr bool
	}{
		{"single", ButtonLeft, 1, 0, false},
		{"double", ButtonLeft, 2, 0, false},
		{"hold", ButtonRight, 1, 500 * time.Millisecond, false},
		{"zero clicks", ButtonLeft, 0, 0, true},
		{"negative hold", ButtonLeft, 1, -time.Millisecond, true},
		{"hold with repeats", ButtonLeft, 2, time.Second, true},
		{"bad button", Button(9), 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewClickAction(tt.button, tt.count, tt.hold)
			if tt.wantErr {
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hold > 0, a.IsHold())
		})
	}
}

func TestClickActionConstructors(t *testing.T) {
	assert.Equal(t, ClickAction{Button: ButtonLeft, ClickCount: 1}, SingleLeft())
	assert.Equal(t, ClickAction{Button: ButtonLeft, ClickCount: 2}, DoubleLeft())
	assert.Equal(t, ClickAction{Button: ButtonRight, ClickCount: 1}, RightClick())

	h, err := Hold(ButtonMiddle, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "MIDDLE hold 1s", h.String())

	_, err = Hold(ButtonLeft, 0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestParseButton(t *testing.T) {
	for in, want := range map[string]Button{"left": ButtonLeft, "RIGHT": ButtonRight, " middle ": ButtonMiddle, "": ButtonLeft} {
		got, err := ParseButton(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseButton("thumb")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestStatus(t *testing.T) {
	assert.False(t, StatusStopped.IsActive())
	assert.True(t, StatusRunning.IsActive())
	assert.True(t, StatusPaused.IsActive())
	assert.Equal(t, "PAUSED", StatusPaused.String())
	assert.Equal(t, "UNKNOWN", Status(7).String())
}

func TestNewMacroPoint(t *testing.T) {
	_, err := NewMacroPoint("  ", Point{}, nil)
	assert.True(t, errors.IsInvalidArgument(err))

	p, err := NewMacroPoint(" target ", Point{X: 1, Y: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, "target", p.Name)
	assert.Equal(t, Exact{}, p.Position)
}

func TestNewRequest(t *testing.T) {
	area, err := NewRandomArea(5, 5)
	require.NoError(t, err)
	point, err := NewMacroPoint("p", Point{X: 300, Y: 300}, area)
	require.NoError(t, err)
	delay, err := FixedDelay(DefaultBaseInterval)
	require.NoError(t, err)
	rnd := mmtest.NewScriptedRandom()

	t.Run("defaults", func(t *testing.T) {
		req, err := NewRequest(point, SingleLeft(), nil, delay, nil, rnd, 0)
		require.NoError(t, err)
		assert.Equal(t, Always{}, req.Schedule)
		assert.Equal(t, area, req.Position)
		assert.True(t, req.Unbounded())
	})

	t.Run("explicit position wins", func(t *testing.T) {
		req, err := NewRequest(point, SingleLeft(), Exact{}, delay, nil, rnd, 3)
		require.NoError(t, err)
		assert.Equal(t, Exact{}, req.Position)
		assert.False(t, req.Unbounded())
	})

	t.Run("rejects", func(t *testing.T) {
		_, err := NewRequest(point, SingleLeft(), nil, delay, nil, nil, 0)
		assert.True(t, errors.IsInvalidArgument(err), "nil random")

		_, err = NewRequest(point, SingleLeft(), nil, delay, nil, rnd, -1)
		assert.True(t, errors.IsInvalidArgument(err), "negative repeat")

		_, err = NewRequest(MacroPoint{}, SingleLeft(), nil, delay, nil, rnd, 0)
		assert.True(t, errors.IsInvalidArgument(err), "blank point")

		_, err = NewRequest(point, ClickAction{Button: ButtonLeft, ClickCount: 0}, nil, delay, nil, rnd, 0)
		assert.True(t, errors.IsInvalidArgument(err), "hand-built action")

		_, err = NewRequest(point, SingleLeft(), nil, DelayPolicy{MinJitter: 5, MaxJitter: 1}, nil, rnd, 0)
		assert.True(t, errors.IsInvalidArgument(err), "hand-built delay")

		_, err = NewRequest(point, SingleLeft(), nil, delay, Window{}, rnd, 0)
		assert.True(t, errors.IsInvalidArgument(err), "empty window")
	})
}

func TestParseDelayPolicy(t *testing.T) {
	tests := []struct {
		name          string
		base, min, mx string
		want          DelayPolicy
		wantErr       bool
	}{
		{name: "all blank", want: DelayPolicy{Base: 300 * time.Millisecond}},
		{name: "base only", base: "120", want: DelayPolicy{Base: 120 * time.Millisecond}},
		{name: "min only copies to max", base: "0", min: "40", want: DelayPolicy{MinJitter: 40 * time.Millisecond, MaxJitter: 40 * time.Millisecond}},
		{name: "max only", mx: "40", want: DelayPolicy{Base: 300 * time.Millisecond, MaxJitter: 40 * time.Millisecond}},
		{name: "full", base: " 10 ", min: "1", mx: "2", want: DelayPolicy{Base: 10 * time.Millisecond, MinJitter: time.Millisecond, MaxJitter: 2 * time.Millisecond}},
		{name: "negative base", base: "-1", wantErr: true},
		{name: "non numeric min", min: "abc", wantErr: true},
		{name: "negative max", mx: "-5", wantErr: true},
		{name: "min greater than max", min: "10", mx: "5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelayPolicy(tt.base, tt.min, tt.mx)
			if tt.wantErr {
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRepeatCount(t *testing.T) {
	n, err := ParseRepeatCount("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = ParseRepeatCount(" 25 ")
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	_, err = ParseRepeatCount("-3")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = ParseRepeatCount("many")
	assert.True(t, errors.IsInvalidArgument(err))
}
