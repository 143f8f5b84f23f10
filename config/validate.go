package config

import (
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/macro"
)

// Validate checks that the configuration is valid.
// Every failure wraps errors.ErrInvalidArgument.
func (c *Config) Validate() error {
	m := c.Macro

	if _, err := macro.ParseButton(m.Button); err != nil {
		return errors.Wrap(err, "macro.button")
	}
	if m.ClickCount < 1 {
		return errors.NewInvalidArgumentError("macro.click_count must be >= 1, got %d", m.ClickCount)
	}
	if m.HoldMS < 0 {
		return errors.NewInvalidArgumentError("macro.hold_ms must be >= 0, got %d", m.HoldMS)
	}
	if m.HoldMS > 0 && m.ClickCount != 1 {
		return errors.NewInvalidArgumentError("macro.hold_ms requires macro.click_count = 1, got %d", m.ClickCount)
	}
	if m.RandomArea.HalfWidth < 0 || m.RandomArea.HalfHeight < 0 {
		return errors.NewInvalidArgumentError("macro.random_area half extents must be >= 0, got %dx%d",
			m.RandomArea.HalfWidth, m.RandomArea.HalfHeight)
	}
	if m.Delay.BaseMS < 0 || m.Delay.MinMS < 0 || m.Delay.MaxMS < 0 {
		return errors.NewInvalidArgumentError("macro.delay values must be >= 0")
	}
	if m.Delay.MinMS > m.Delay.MaxMS {
		return errors.NewInvalidArgumentError("macro.delay.min_ms (%d) must not exceed macro.delay.max_ms (%d)",
			m.Delay.MinMS, m.Delay.MaxMS)
	}
	if m.Repeat < 0 {
		return errors.NewInvalidArgumentError("macro.repeat must be >= 0, got %d", m.Repeat)
	}
	if m.Schedule.Enabled {
		if _, err := m.Schedule.TimeRange(); err != nil {
			return err
		}
	}

	e := c.Engine
	if e.MaxClicksPerSecond < 0 {
		return errors.NewInvalidArgumentError("engine.max_clicks_per_second must be >= 0, got %g", e.MaxClicksPerSecond)
	}
	if e.Burst < 0 {
		return errors.NewInvalidArgumentError("engine.burst must be >= 0, got %d", e.Burst)
	}
	if e.MaxConsecutiveFailures < 1 {
		return errors.NewInvalidArgumentError("engine.max_consecutive_failures must be >= 1, got %d", e.MaxConsecutiveFailures)
	}
	if e.PausePollMS < 0 || e.SchedulePollMS < 0 {
		return errors.NewInvalidArgumentError("engine poll intervals must be >= 0")
	}

	if c.Capture.TimeoutSeconds <= 0 {
		return errors.NewInvalidArgumentError("capture.timeout_seconds must be > 0, got %d", c.Capture.TimeoutSeconds)
	}
	if c.Hotkeys.TogglePause != 0 && c.Hotkeys.TogglePause == c.Hotkeys.Stop {
		return errors.NewInvalidArgumentError("hotkeys.toggle_pause and hotkeys.stop must differ")
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.NewInvalidArgumentError("journal.path cannot be empty when the journal is enabled")
	}
	return nil
}
