package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/teranos/mousemacro/config"
	"github.com/teranos/mousemacro/db"
	"github.com/teranos/mousemacro/engine"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/input"
	"github.com/teranos/mousemacro/journal"
	"github.com/teranos/mousemacro/macro"
)

// addMacroFlags registers the flags that override the [macro] section.
func addMacroFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "Macro name shown in logs and the journal")
	fs.Int("x", 0, "Base X coordinate")
	fs.Int("y", 0, "Base Y coordinate")
	fs.String("button", "", "Mouse button: left, middle, right")
	fs.Int("clicks", 0, "Clicks per tick (2 = double click)")
	fs.Int64("hold", 0, "Hold the button for this many ms instead of clicking")
	fs.Int("area-width", 0, "Random area half width in pixels (enables random area)")
	fs.Int("area-height", 0, "Random area half height in pixels (enables random area)")
	fs.String("delay", "", "Base delay between ticks in ms (blank = 300)")
	fs.String("min-delay", "", "Minimum random extra delay in ms")
	fs.String("max-delay", "", "Maximum random extra delay in ms (blank = min)")
	fs.String("repeat", "", "Number of ticks (blank or 0 = until stopped)")
	fs.String("from", "", "Only click from this time of day (HH:MM)")
	fs.String("until", "", "Only click until this time of day (HH:MM)")
	fs.Uint64("seed", 0, "Seed for reproducible randomness (0 = random)")
}

// applyMacroFlags returns a copy of m with every changed flag applied.
// Delay and repeat go through the same parsers as free-form user input.
func applyMacroFlags(fs *pflag.FlagSet, m config.MacroConfig) (config.MacroConfig, error) {
	if fs.Changed("name") {
		m.Name, _ = fs.GetString("name")
	}
	if fs.Changed("x") {
		m.X, _ = fs.GetInt("x")
	}
	if fs.Changed("y") {
		m.Y, _ = fs.GetInt("y")
	}
	if fs.Changed("button") {
		m.Button, _ = fs.GetString("button")
	}
	if fs.Changed("clicks") {
		m.ClickCount, _ = fs.GetInt("clicks")
	}
	if fs.Changed("hold") {
		m.HoldMS, _ = fs.GetInt64("hold")
	}
	if fs.Changed("area-width") || fs.Changed("area-height") {
		m.RandomArea.Enabled = true
		if fs.Changed("area-width") {
			m.RandomArea.HalfWidth, _ = fs.GetInt("area-width")
		}
		if fs.Changed("area-height") {
			m.RandomArea.HalfHeight, _ = fs.GetInt("area-height")
		}
	}

	if fs.Changed("delay") || fs.Changed("min-delay") || fs.Changed("max-delay") {
		base, _ := fs.GetString("delay")
		minRaw, _ := fs.GetString("min-delay")
		maxRaw, _ := fs.GetString("max-delay")
		p, err := macro.ParseDelayPolicy(base, minRaw, maxRaw)
		if err != nil {
			return m, err
		}
		m.Delay = config.DelayConfig{
			BaseMS: p.Base.Milliseconds(),
			MinMS:  p.MinJitter.Milliseconds(),
			MaxMS:  p.MaxJitter.Milliseconds(),
		}
	}
	if fs.Changed("repeat") {
		raw, _ := fs.GetString("repeat")
		n, err := macro.ParseRepeatCount(raw)
		if err != nil {
			return m, err
		}
		m.Repeat = n
	}

	if fs.Changed("from") || fs.Changed("until") {
		from, _ := fs.GetString("from")
		until, _ := fs.GetString("until")
		if from == "" || until == "" {
			return m, errors.NewInvalidArgumentError("--from and --until must be given together")
		}
		m.Schedule = config.ScheduleConfig{Enabled: true, Start: from, End: until}
	}
	if fs.Changed("seed") {
		m.Seed, _ = fs.GetUint64("seed")
	}
	return m, nil
}

// buildRequest turns config plus flag overrides into a validated request.
func buildRequest(fs *pflag.FlagSet, cfg *config.Config) (macro.Request, error) {
	m, err := applyMacroFlags(fs, cfg.Macro)
	if err != nil {
		return macro.Request{}, err
	}
	c := *cfg
	c.Macro = m
	return c.MacroRequest(nil)
}

// buildExecutor picks the dry-run or native executor and applies the rate cap.
func buildExecutor(cfg *config.Config, log *zap.SugaredLogger) (engine.ClickExecutor, error) {
	var exec engine.ClickExecutor
	if cfg.Engine.DryRun {
		exec = engine.NewDryRunExecutor(log)
	} else {
		mouse, err := input.NewMouse()
		if err != nil {
			return nil, err
		}
		exec = engine.NewRobotExecutor(mouse)
	}
	return engine.NewRateLimitedExecutor(exec, cfg.Engine.MaxClicksPerSecond, cfg.Engine.Burst), nil
}

// openJournal opens the run journal, creating its directory. The caller closes the returned closer.
func openJournal(cfg *config.Config, log *zap.SugaredLogger) (*journal.Store, func() error, error) {
	path := cfg.Journal.Path
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to create journal directory %s", dir)
		}
	}
	conn, err := db.OpenWithMigrations(path, log)
	if err != nil {
		return nil, nil, err
	}
	return journal.NewStore(conn), conn.Close, nil
}
