package config

import (
	"time"

	"github.com/teranos/mousemacro/engine"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/macro"
)

// TimeRange parses the schedule window.
func (s ScheduleConfig) TimeRange() (macro.TimeRange, error) {
	start, err := macro.ParseTimeOfDay(s.Start)
	if err != nil {
		return macro.TimeRange{}, errors.Wrap(err, "macro.schedule.start")
	}
	end, err := macro.ParseTimeOfDay(s.End)
	if err != nil {
		return macro.TimeRange{}, errors.Wrap(err, "macro.schedule.end")
	}
	r, err := macro.NewTimeRange(start, end)
	if err != nil {
		return macro.TimeRange{}, errors.Wrap(err, "macro.schedule")
	}
	return r, nil
}

// Point is the configured base coordinate.
func (m MacroConfig) Point() macro.Point {
	return macro.Point{X: m.X, Y: m.Y}
}

// Action builds the click action.
func (m MacroConfig) Action() (macro.ClickAction, error) {
	button, err := macro.ParseButton(m.Button)
	if err != nil {
		return macro.ClickAction{}, errors.Wrap(err, "macro.button")
	}
	action, err := macro.NewClickAction(button, m.ClickCount, time.Duration(m.HoldMS)*time.Millisecond)
	if err != nil {
		return macro.ClickAction{}, errors.Wrap(err, "macro action")
	}
	return action, nil
}

// Position builds the position policy.
func (m MacroConfig) Position() (macro.PositionPolicy, error) {
	if !m.RandomArea.Enabled {
		return macro.Exact{}, nil
	}
	area, err := macro.NewRandomArea(m.RandomArea.HalfWidth, m.RandomArea.HalfHeight)
	if err != nil {
		return nil, errors.Wrap(err, "macro.random_area")
	}
	return area, nil
}

// DelayPolicy builds the inter-click delay.
func (m MacroConfig) DelayPolicy() (macro.DelayPolicy, error) {
	p, err := macro.NewDelayPolicy(
		time.Duration(m.Delay.BaseMS)*time.Millisecond,
		time.Duration(m.Delay.MinMS)*time.Millisecond,
		time.Duration(m.Delay.MaxMS)*time.Millisecond)
	if err != nil {
		return macro.DelayPolicy{}, errors.Wrap(err, "macro.delay")
	}
	return p, nil
}

// Schedule builds the time-of-day gate.
func (m MacroConfig) Schedule() (macro.Schedule, error) {
	if !m.Schedule.Enabled {
		return macro.Always{}, nil
	}
	r, err := m.Schedule.TimeRange()
	if err != nil {
		return nil, err
	}
	return macro.Window{Range: r}, nil
}

// Random returns the configured random source: seeded when seed != 0.
func (m MacroConfig) Random() macro.Random {
	if m.Seed != 0 {
		return macro.NewRandom(m.Seed)
	}
	return macro.NewSystemRandom()
}

// MacroRequest converts the [macro] section into a validated request.
// random may be nil to use the configured source.
func (c *Config) MacroRequest(random macro.Random) (macro.Request, error) {
	m := c.Macro

	position, err := m.Position()
	if err != nil {
		return macro.Request{}, err
	}
	point, err := macro.NewMacroPoint(m.Name, m.Point(), position)
	if err != nil {
		return macro.Request{}, errors.Wrap(err, "macro.name")
	}
	action, err := m.Action()
	if err != nil {
		return macro.Request{}, err
	}
	delay, err := m.DelayPolicy()
	if err != nil {
		return macro.Request{}, err
	}
	schedule, err := m.Schedule()
	if err != nil {
		return macro.Request{}, err
	}
	if random == nil {
		random = m.Random()
	}

	return macro.NewRequest(point, action, position, delay, schedule, random, m.Repeat)
}

// EngineConfig converts the [engine] section. Zero poll intervals keep the engine defaults.
func (c *Config) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if c.Engine.PausePollMS > 0 {
		cfg.PausePoll = time.Duration(c.Engine.PausePollMS) * time.Millisecond
	}
	if c.Engine.SchedulePollMS > 0 {
		cfg.SchedulePoll = time.Duration(c.Engine.SchedulePollMS) * time.Millisecond
	}
	if c.Engine.MaxConsecutiveFailures > 0 {
		cfg.MaxConsecutiveFailures = c.Engine.MaxConsecutiveFailures
	}
	return cfg
}

// CaptureTimeout is the capture wait as a duration.
func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Capture.TimeoutSeconds) * time.Second
}
