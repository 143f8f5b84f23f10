// Package config loads mousemacro settings from layered TOML files and
// MOUSEMACRO_* environment variables.
package config

import "fmt"

// Config represents the mousemacro configuration
type Config struct {
	Macro   MacroConfig   `mapstructure:"macro" toml:"macro" json:"macro" yaml:"macro"`
	Engine  EngineConfig  `mapstructure:"engine" toml:"engine" json:"engine" yaml:"engine"`
	Capture CaptureConfig `mapstructure:"capture" toml:"capture" json:"capture" yaml:"capture"`
	Hotkeys HotkeysConfig `mapstructure:"hotkeys" toml:"hotkeys" json:"hotkeys" yaml:"hotkeys"`
	Journal JournalConfig `mapstructure:"journal" toml:"journal" json:"journal" yaml:"journal"`
	Log     LogConfig     `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// MacroConfig describes the single macro a run executes
type MacroConfig struct {
	Name       string           `mapstructure:"name" toml:"name" json:"name" yaml:"name"`
	X          int              `mapstructure:"x" toml:"x" json:"x" yaml:"x"`
	Y          int              `mapstructure:"y" toml:"y" json:"y" yaml:"y"`
	Button     string           `mapstructure:"button" toml:"button" json:"button" yaml:"button"`                 // left, middle, right
	ClickCount int              `mapstructure:"click_count" toml:"click_count" json:"click_count" yaml:"click_count"` // 1 = single, 2 = double
	HoldMS     int64            `mapstructure:"hold_ms" toml:"hold_ms" json:"hold_ms" yaml:"hold_ms"`             // > 0 presses and holds (click_count must be 1)
	RandomArea RandomAreaConfig `mapstructure:"random_area" toml:"random_area" json:"random_area" yaml:"random_area"`
	Delay      DelayConfig      `mapstructure:"delay" toml:"delay" json:"delay" yaml:"delay"`
	Repeat     int              `mapstructure:"repeat" toml:"repeat" json:"repeat" yaml:"repeat"` // 0 = until stopped
	Schedule   ScheduleConfig   `mapstructure:"schedule" toml:"schedule" json:"schedule" yaml:"schedule"`
	Seed       uint64           `mapstructure:"seed" toml:"seed" json:"seed" yaml:"seed"` // 0 = seeded from the system
}

// RandomAreaConfig spreads clicks over a rectangle centred on (x, y)
type RandomAreaConfig struct {
	Enabled    bool `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	HalfWidth  int  `mapstructure:"half_width" toml:"half_width" json:"half_width" yaml:"half_width"`
	HalfHeight int  `mapstructure:"half_height" toml:"half_height" json:"half_height" yaml:"half_height"`
}

// DelayConfig is the wait after every click: base plus a jitter in [min, max]
type DelayConfig struct {
	BaseMS int64 `mapstructure:"base_ms" toml:"base_ms" json:"base_ms" yaml:"base_ms"`
	MinMS  int64 `mapstructure:"min_ms" toml:"min_ms" json:"min_ms" yaml:"min_ms"`
	MaxMS  int64 `mapstructure:"max_ms" toml:"max_ms" json:"max_ms" yaml:"max_ms"`
}

// ScheduleConfig limits clicking to a daily window. End before start wraps past midnight.
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Start   string `mapstructure:"start" toml:"start" json:"start" yaml:"start"` // HH:MM or HH:MM:SS
	End     string `mapstructure:"end" toml:"end" json:"end" yaml:"end"`
}

// EngineConfig tunes the run loop and click execution
type EngineConfig struct {
	DryRun                 bool    `mapstructure:"dry_run" toml:"dry_run" json:"dry_run" yaml:"dry_run"`
	MaxClicksPerSecond     float64 `mapstructure:"max_clicks_per_second" toml:"max_clicks_per_second" json:"max_clicks_per_second" yaml:"max_clicks_per_second"` // 0 = unlimited
	Burst                  int     `mapstructure:"burst" toml:"burst" json:"burst" yaml:"burst"`
	MaxConsecutiveFailures int     `mapstructure:"max_consecutive_failures" toml:"max_consecutive_failures" json:"max_consecutive_failures" yaml:"max_consecutive_failures"`
	PausePollMS            int     `mapstructure:"pause_poll_ms" toml:"pause_poll_ms" json:"pause_poll_ms" yaml:"pause_poll_ms"`
	SchedulePollMS         int     `mapstructure:"schedule_poll_ms" toml:"schedule_poll_ms" json:"schedule_poll_ms" yaml:"schedule_poll_ms"`
}

// CaptureConfig configures interactive coordinate capture
type CaptureConfig struct {
	TimeoutSeconds int  `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
	EscapeCancels  bool `mapstructure:"escape_cancels" toml:"escape_cancels" json:"escape_cancels" yaml:"escape_cancels"`
}

// HotkeysConfig holds raw global key codes; 0 leaves a hotkey unbound
type HotkeysConfig struct {
	TogglePause uint16 `mapstructure:"toggle_pause" toml:"toggle_pause" json:"toggle_pause" yaml:"toggle_pause"`
	Stop        uint16 `mapstructure:"stop" toml:"stop" json:"stop" yaml:"stop"`
}

// JournalConfig configures the run history database
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path" yaml:"path"`
}

// LogConfig configures console output
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // gruvbox, everforest
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Macro: %s@(%d,%d), Engine: {DryRun: %t}, Journal: %s}",
		c.Macro.Name, c.Macro.X, c.Macro.Y, c.Engine.DryRun, c.Journal.Path)
}
