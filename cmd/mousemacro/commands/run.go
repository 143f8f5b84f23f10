package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/mousemacro/config"
	"github.com/teranos/mousemacro/engine"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/hook"
	"github.com/teranos/mousemacro/journal"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/macro"
	"github.com/teranos/mousemacro/sym"
)

// How long Ctrl+C waits for an in-flight click or hold to finish.
const shutdownTimeout = 5 * time.Second

// RunCmd runs the configured macro in the foreground
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: sym.Pulse + " Run the configured macro",
	Long: sym.Pulse + ` Run the configured macro until it completes or is stopped.

The macro comes from the [macro] config section; flags override single values.
Clicks are only logged while engine.dry_run is true (the default); pass --live
to inject real clicks (requires a build with -tags native).

While running, type a command and press Enter:
  pause | resume | toggle | status | stop | help

Global hotkeys (hotkeys.toggle_pause, hotkeys.stop) work without focus.
Ctrl+C stops the macro and waits for the current click to finish.

Examples:
  mousemacro run --x 640 --y 480 --repeat 10
  mousemacro run --live --clicks 2 --delay 500
  mousemacro run --area-width 5 --area-height 5 --min-delay 0 --max-delay 200
  mousemacro run --from 09:00 --until 17:30
  mousemacro run --watch                   # Restart when the config file changes`,
	RunE: runMacro,
}

func init() {
	addMacroFlags(RunCmd.Flags())
	RunCmd.Flags().Bool("live", false, "Inject real clicks (overrides engine.dry_run)")
	RunCmd.Flags().Bool("dry-run", false, "Only log clicks (overrides engine.dry_run)")
	RunCmd.MarkFlagsMutuallyExclusive("live", "dry-run")
	RunCmd.Flags().Bool("no-journal", false, "Do not record this run in the journal")
	RunCmd.Flags().Bool("watch", false, "Restart the macro when the config file changes")
}

func runMacro(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := *loaded
	fs := cmd.Flags()
	if live, _ := fs.GetBool("live"); live {
		cfg.Engine.DryRun = false
	}
	if dry, _ := fs.GetBool("dry-run"); dry {
		cfg.Engine.DryRun = true
	}

	req, err := buildRequest(fs, &cfg)
	if err != nil {
		return err
	}

	log := logger.ComponentLogger("run")
	exec, err := buildExecutor(&cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := &runReport{out: out}
	observers := []engine.RunObserver{report}
	if noJournal, _ := fs.GetBool("no-journal"); cfg.Journal.Enabled && !noJournal {
		store, closeJournal, err := openJournal(&cfg, log)
		if err != nil {
			log.Warnw("Run journal disabled", logger.FieldPath, cfg.Journal.Path, logger.FieldError, err)
		} else {
			defer closeJournal()
			observers = append(observers, journal.NewRecorder(store, log))
		}
	}

	svc := engine.NewService(exec, cfg.EngineConfig(), log, engine.WithObserver(engine.Observers(observers...)))

	ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	stopHotkeys := startHotkeys(&cfg, svc, log)
	defer stopHotkeys()

	reloads := make(chan macro.Request, 1)
	if watch, _ := fs.GetBool("watch"); watch {
		stopWatch, err := watchConfig(func(next *config.Config) error {
			c := *next
			c.Engine = cfg.Engine
			r, err := buildRequest(fs, &c)
			if err != nil {
				return err
			}
			select {
			case reloads <- r:
			default:
				log.Debugw("Reload already pending, dropping newer request")
			}
			return nil
		})
		if err != nil {
			log.Warnw("Config watch disabled", logger.FieldError, err)
		} else {
			defer stopWatch()
		}
	}

	if err := svc.Start(req); err != nil {
		return err
	}
	printRunBanner(out, req, cfg)

	ctrl := &controller{
		ctl: svc,
		progress: func() (int, bool) {
			p, ok := svc.Progress()
			return p.Executed, ok
		},
		out: out,
	}
	go ctrl.serve(ctx, cmd.InOrStdin())

	for {
		done := svc.Done()
		select {
		case <-ctx.Done():
			pterm.Info.WithWriter(out).Println("Stopping macro...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			err := svc.Shutdown(shutdownCtx)
			cancel()
			return err

		case next := <-reloads:
			svc.Stop()
			<-done
			if err := svc.Start(next); err != nil {
				return errors.Wrap(err, "restart after config change")
			}
			pterm.Info.WithWriter(out).Println("Config changed, macro restarted")

		case <-done:
			return report.err()
		}
	}
}

// startHotkeys binds the configured global hotkeys to svc. At -vvv every key
// event is logged too. The returned func releases the hook.
func startHotkeys(cfg *config.Config, svc *engine.Service, log *zap.SugaredLogger) func() {
	traceKeys := logger.ShouldOutput(logger.Verbosity, logger.OutputHookEvents)
	if cfg.Hotkeys.TogglePause == 0 && cfg.Hotkeys.Stop == 0 && !traceKeys {
		return func() {}
	}

	hub := hook.NewHub(hook.NewDriver(), log)
	hotkeys := hook.NewHotkeys(hub, log)
	hotkeys.Bind(cfg.Hotkeys.TogglePause, func() {
		if status, err := svc.TogglePause(); err != nil {
			log.Debugw("Toggle hotkey ignored", logger.FieldError, err)
		} else {
			log.Infow("Toggled by hotkey", logger.FieldStatus, status.String())
		}
	})
	hotkeys.Bind(cfg.Hotkeys.Stop, svc.Stop)
	if err := hotkeys.Start(); err != nil {
		log.Warnw("Hotkeys disabled", logger.FieldError, err)
	}

	var keyLog *hook.KeyLogger
	if traceKeys {
		keyLog = hook.NewKeyLogger(hub, log)
		keyLog.Start()
	}

	return func() {
		if keyLog != nil {
			keyLog.Stop()
		}
		hotkeys.Stop()
	}
}

// watchConfig reloads the highest-precedence config file on change.
func watchConfig(onReload config.ReloadCallback) (func(), error) {
	path := config.WatchPath()
	if path == "" {
		return nil, errors.WithHint(errors.New("no config file to watch"),
			"create mousemacro.toml or pass --config")
	}
	cw, err := config.NewConfigWatcher(path)
	if err != nil {
		return nil, err
	}
	cw.OnReload(onReload)
	cw.Start()
	logger.Infow("Watching config", logger.FieldPath, path)
	return func() { _ = cw.Stop() }, nil
}

func printRunBanner(w io.Writer, req macro.Request, cfg config.Config) {
	if logger.JSONOutput {
		return
	}
	mode := "dry run"
	if !cfg.Engine.DryRun {
		mode = "live"
	}
	repeat := "until stopped"
	if !req.Unbounded() {
		repeat = fmt.Sprintf("%d times", req.RepeatCount)
	}
	pterm.Info.WithWriter(w).Printfln("%s Running %q (%s): %s at %s, %s, every %s, %s",
		sym.Pulse, req.Point.Name, mode, req.Action, req.Point.Base, req.Position, req.Delay, repeat)
	if logger.ShouldOutput(logger.Verbosity, logger.OutputStartup) {
		pterm.Info.WithWriter(w).Printfln("Schedule: %s", req.Schedule)
	}
	fmt.Fprintln(w, "Type 'help' for commands, Ctrl+C to stop.")
}

// runReport prints each run's outcome and remembers the last one.
type runReport struct {
	out io.Writer

	mu   sync.Mutex
	last *engine.RunSummary
}

func (r *runReport) RunStarted(info engine.RunInfo) {
	logger.Debugw("Run started", logger.FieldRunID, info.ID)
}

func (r *runReport) RunFinished(info engine.RunInfo, s engine.RunSummary) {
	r.mu.Lock()
	r.last = &s
	r.mu.Unlock()

	if logger.JSONOutput {
		line := map[string]interface{}{
			"run_id":      info.ID,
			"macro":       info.Request.Point.Name,
			"status":      string(s.Reason),
			"executed":    s.Executed,
			"duration_ms": s.Duration().Milliseconds(),
		}
		if s.Err != nil {
			line["error"] = s.Err.Error()
		}
		_ = json.NewEncoder(r.out).Encode(line)
		return
	}

	elapsed := s.Duration().Round(time.Millisecond)
	switch s.Reason {
	case engine.ReasonCompleted:
		pterm.Success.WithWriter(r.out).Printfln("%s %q completed: %d clicks in %s", sym.PulseClose, info.Request.Point.Name, s.Executed, elapsed)
	case engine.ReasonStopped:
		pterm.Info.WithWriter(r.out).Printfln("%s %q stopped after %d clicks (%s)", sym.PulseClose, info.Request.Point.Name, s.Executed, elapsed)
	default:
		pterm.Error.WithWriter(r.out).Printfln("%s %q failed after %d clicks: %v", sym.PulseClose, info.Request.Point.Name, s.Executed, s.Err)
	}
}

// err is the failure of the last finished run, if any.
func (r *runReport) err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil || r.last.Reason != engine.ReasonFailed {
		return nil
	}
	if r.last.Err == nil {
		return errors.New("macro failed")
	}
	return errors.Wrap(r.last.Err, "macro failed")
}
