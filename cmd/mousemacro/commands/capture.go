package commands

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mousemacro/capture"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/hook"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/sym"
)

// CaptureCmd reads the coordinates of the next mouse click
var CaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: sym.Capture + " Capture the coordinates of the next mouse click",
	Long: sym.Capture + ` Wait for the next mouse click anywhere on screen and print its coordinates.

Escape cancels (capture.escape_cancels), as does Ctrl+C. The wait ends after
capture.timeout_seconds. Requires a build with -tags native.

Examples:
  mousemacro capture
  mousemacro capture --timeout 30s
  mousemacro capture --json`,
	RunE: runCapture,
}

func init() {
	CaptureCmd.Flags().Duration("timeout", 0, "How long to wait (default capture.timeout_seconds)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	timeout := cfg.CaptureTimeout()
	if cmd.Flags().Changed("timeout") {
		timeout, _ = cmd.Flags().GetDuration("timeout")
	}

	log := logger.ComponentLogger("capture")
	hub := hook.NewHub(hook.NewDriver(), log)
	captor := capture.NewCaptor(hub, log)
	defer captor.Close()

	if cfg.Capture.EscapeCancels {
		if err := hub.Register(); err == nil {
			escape := capture.NewEscapeCancel(captor)
			if err := hub.AddKeyListener(escape); err != nil {
				log.Warnw("Escape cancel unavailable", logger.FieldError, err)
			}
			defer func() {
				_ = hub.RemoveKeyListener(escape)
				_ = hub.Unregister()
			}()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if !logger.JSONOutput {
		pterm.Info.WithWriter(out).Printfln("%s Click anywhere to capture (%s, Escape cancels)", sym.Capture, timeout)
	}
	return awaitCapture(ctx, captor, timeout, out)
}

// awaitCapture starts a capture and prints its result. ctx cancellation cancels the capture.
func awaitCapture(ctx context.Context, captor *capture.Captor, timeout time.Duration, out io.Writer) error {
	results := captor.CaptureNextClick(timeout)

	var res capture.Result
	select {
	case res = <-results:
	case <-ctx.Done():
		captor.Cancel()
		res = <-results
	}
	return printCaptureResult(out, res)
}

func printCaptureResult(out io.Writer, res capture.Result) error {
	if logger.JSONOutput {
		line := map[string]interface{}{"result": res.Kind().String()}
		if p, ok := res.Point(); ok {
			line["x"], line["y"] = p.X, p.Y
		}
		if res.Reason() != "" {
			line["reason"] = res.Reason()
		}
		if err := json.NewEncoder(out).Encode(line); err != nil {
			return errors.Wrap(err, "failed to encode capture result")
		}
	}

	switch res.Kind() {
	case capture.KindCaptured:
		p, _ := res.Point()
		if !logger.JSONOutput {
			pterm.Success.WithWriter(out).Printfln("Captured %s", p)
			pterm.Fprintln(out, "  Use it with: mousemacro run --x", p.X, "--y", p.Y)
		}
		return nil
	case capture.KindCancelled:
		if !logger.JSONOutput {
			pterm.Warning.WithWriter(out).Println("Capture cancelled")
		}
		return nil
	case capture.KindTimeout:
		return errors.WithHint(errors.New("no click captured before the timeout"),
			"pass a longer --timeout")
	default:
		err := errors.Newf("capture failed: %s", res.Reason())
		if res.Reason() == capture.ReasonInProgress {
			return err
		}
		return errors.WithHint(err, "global mouse capture needs a build with -tags native")
	}
}
