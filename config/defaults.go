package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDirPermissions is used for ~/.mousemacro
const DefaultDirPermissions = 0o755

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Macro defaults match the interactive app's initial form
	v.SetDefault("macro.name", "default")
	v.SetDefault("macro.x", 300)
	v.SetDefault("macro.y", 300)
	v.SetDefault("macro.button", "left")
	v.SetDefault("macro.click_count", 1)
	v.SetDefault("macro.hold_ms", 0)
	v.SetDefault("macro.random_area.enabled", false)
	v.SetDefault("macro.random_area.half_width", 0)
	v.SetDefault("macro.random_area.half_height", 0)
	v.SetDefault("macro.delay.base_ms", 300)
	v.SetDefault("macro.delay.min_ms", 0)
	v.SetDefault("macro.delay.max_ms", 0)
	v.SetDefault("macro.repeat", 0)
	v.SetDefault("macro.schedule.enabled", false)
	v.SetDefault("macro.schedule.start", "")
	v.SetDefault("macro.schedule.end", "")
	v.SetDefault("macro.seed", 0)

	// Engine defaults
	v.SetDefault("engine.dry_run", true)             // Injecting real clicks is opt-in
	v.SetDefault("engine.max_clicks_per_second", 20) // Safety cap
	v.SetDefault("engine.burst", 2)
	v.SetDefault("engine.max_consecutive_failures", 3)
	v.SetDefault("engine.pause_poll_ms", 50)
	v.SetDefault("engine.schedule_poll_ms", 200)

	v.SetDefault("capture.timeout_seconds", 15)
	v.SetDefault("capture.escape_cancels", true)

	v.SetDefault("hotkeys.toggle_pause", 0)
	v.SetDefault("hotkeys.stop", 0)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", defaultJournalPath())

	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.json", false)
}

// UserDir returns ~/.mousemacro, or "" when the home directory is unknown.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mousemacro")
}

func defaultJournalPath() string {
	if dir := UserDir(); dir != "" {
		return filepath.Join(dir, "journal.db")
	}
	return "mousemacro.db"
}
