package macro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/mousemacro/errors"
	mmtest "github.com/teranos/mousemacro/internal/testing"
)

func TestNewDelayPolicy_Validation(t *testing.T) {
	tests := []struct {
		name          string
		base, min, mx time.Duration
		wantErr       bool
	}{
		{"zero everything", 0, 0, 0, false},
		{"base only", 300 * time.Millisecond, 0, 0, false},
		{"jitter", 100 * time.Millisecond, 10 * time.Millisecond, 50 * time.Millisecond, false},
		{"negative base", -1, 0, 0, true},
		{"negative min", 0, -1, 0, true},
		{"negative max", 0, 0, -1, true},
		{"inverted", 0, 20 * time.Millisecond, 10 * time.Millisecond, true},
		{"overflow", 1 << 62, 0, 1 << 62, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDelayPolicy(tt.base, tt.min, tt.mx)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDelayPolicy_ResolveWithinBounds(t *testing.T) {
	p, err := NewDelayPolicy(100*time.Millisecond, 5*time.Millisecond, 15*time.Millisecond)
	require.NoError(t, err)

	low, high := p.Bounds()
	assert.Equal(t, 105*time.Millisecond, low)
	assert.Equal(t, 115*time.Millisecond, high)

	r := NewRandom(42)
	for i := 0; i < 1000; i++ {
		d := p.Resolve(r)
		assert.GreaterOrEqual(t, d, low)
		assert.LessOrEqual(t, d, high)
	}
}

func TestDelayPolicy_BoundsAreReachable(t *testing.T) {
	p, err := NewDelayPolicy(10, 2, 4)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(12), p.Resolve(mmtest.NewScriptedRandom(0)))
	assert.Equal(t, time.Duration(14), p.Resolve(mmtest.MaxRandom()))
}

func TestDelayPolicy_FixedNeverConsultsRandom(t *testing.T) {
	p, err := NewDelayPolicy(50*time.Millisecond, 7*time.Millisecond, 7*time.Millisecond)
	require.NoError(t, err)

	r := mmtest.NewScriptedRandom(3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, 57*time.Millisecond, p.Resolve(r))
	}
	assert.Zero(t, r.Calls())
}

func TestRandomArea(t *testing.T) {
	t.Run("rejects negative extents", func(t *testing.T) {
		_, err := NewRandomArea(-1, 0)
		assert.True(t, errors.IsInvalidArgument(err))
		_, err = NewRandomArea(0, -1)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("stays within area", func(t *testing.T) {
		area, err := NewRandomArea(3, 7)
		require.NoError(t, err)

		base := Point{X: 100, Y: -20}
		r := NewRandom(7)
		for i := 0; i < 1000; i++ {
			p := area.Resolve(base, r)
			assert.GreaterOrEqual(t, p.X, 97)
			assert.LessOrEqual(t, p.X, 103)
			assert.GreaterOrEqual(t, p.Y, -27)
			assert.LessOrEqual(t, p.Y, -13)
		}
	})

	t.Run("edges are inclusive", func(t *testing.T) {
		area, err := NewRandomArea(2, 2)
		require.NoError(t, err)

		assert.Equal(t, Point{X: 8, Y: 8}, area.Resolve(Point{X: 10, Y: 10}, mmtest.NewScriptedRandom(0)))
		assert.Equal(t, Point{X: 12, Y: 12}, area.Resolve(Point{X: 10, Y: 10}, mmtest.MaxRandom()))
	})

	t.Run("zero extents return base without sampling", func(t *testing.T) {
		area, err := NewRandomArea(0, 0)
		require.NoError(t, err)

		r := mmtest.NewScriptedRandom(1)
		assert.Equal(t, Point{X: 5, Y: 6}, area.Resolve(Point{X: 5, Y: 6}, r))
		assert.Zero(t, r.Calls())
	})

	t.Run("one zero axis samples only the other", func(t *testing.T) {
		area, err := NewRandomArea(4, 0)
		require.NoError(t, err)

		r := mmtest.NewScriptedRandom(8)
		assert.Equal(t, Point{X: 4, Y: 0}, area.Resolve(Point{}, r))
		assert.Equal(t, 1, r.Calls())
	})
}

func TestExact(t *testing.T) {
	r := mmtest.NewScriptedRandom(1)
	assert.Equal(t, Point{X: 300, Y: 300}, Exact{}.Resolve(Point{X: 300, Y: 300}, r))
	assert.Zero(t, r.Calls())
}

func TestTimeRange(t *testing.T) {
	at := func(h, m int) TimeOfDay {
		tod, err := NewTimeOfDay(h, m, 0)
		require.NoError(t, err)
		return tod
	}

	t.Run("rejects empty range", func(t *testing.T) {
		_, err := NewTimeRange(at(9, 0), at(9, 0))
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("rejects out of day bounds", func(t *testing.T) {
		_, err := NewTimeRange(at(9, 0), TimeOfDay(25*time.Hour))
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("normal range", func(t *testing.T) {
		r, err := NewTimeRange(at(9, 0), at(17, 0))
		require.NoError(t, err)
		assert.False(t, r.OverMidnight())

		assert.True(t, r.Contains(at(9, 0)), "start is inclusive")
		assert.True(t, r.Contains(at(12, 30)))
		assert.False(t, r.Contains(at(17, 0)), "end is exclusive")
		assert.False(t, r.Contains(at(8, 59)))
		assert.False(t, r.Contains(at(23, 0)))
	})

	t.Run("wraps past midnight", func(t *testing.T) {
		r, err := NewTimeRange(at(22, 0), at(6, 0))
		require.NoError(t, err)
		assert.True(t, r.OverMidnight())

		assert.True(t, r.Contains(at(22, 0)))
		assert.True(t, r.Contains(at(23, 59)))
		assert.True(t, r.Contains(at(0, 0)))
		assert.True(t, r.Contains(at(5, 59)))
		assert.False(t, r.Contains(at(6, 0)))
		assert.False(t, r.Contains(at(12, 0)))
		assert.False(t, r.Contains(at(21, 59)))
	})
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("07:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05:00", tod.String())

	tod, err = ParseTimeOfDay(" 23:59:58 ")
	require.NoError(t, err)
	assert.Equal(t, "23:59:58", tod.String())

	for _, bad := range []string{"", "24:00", "7", "12:60", "noon"} {
		_, err := ParseTimeOfDay(bad)
		assert.True(t, errors.IsInvalidArgument(err), bad)
	}
}

func TestTimeOfDayOf(t *testing.T) {
	ts := time.Date(2026, 1, 2, 13, 14, 15, 500, time.UTC)
	assert.Equal(t, "13:14:15", TimeOfDayOf(ts).String())
}

func TestSchedules(t *testing.T) {
	r, err := NewTimeRange(TimeOfDay(time.Hour), TimeOfDay(2*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name     string
		schedule Schedule
		at       TimeOfDay
		want     bool
	}{
		{"always at midnight", Always{}, 0, true},
		{"always at noon", Always{}, TimeOfDay(12 * time.Hour), true},
		{"window inside", Window{Range: r}, TimeOfDay(90 * time.Minute), true},
		{"window outside", Window{Range: r}, TimeOfDay(3 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.Allowed(tt.at))
		})
	}
}
