package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/macro"
)

// macroControl is the part of engine.Service the controller drives.
type macroControl interface {
	Pause() error
	Resume() error
	TogglePause() (macro.Status, error)
	Stop()
	Status() macro.Status
}

// progressFunc reports how many clicks the current run executed.
type progressFunc func() (executed int, ok bool)

// controller applies control lines typed on stdin to the running macro.
type controller struct {
	ctl      macroControl
	progress progressFunc
	out      io.Writer
}

const controllerHelp = "commands: pause | resume | toggle | status | stop | help"

// handle applies one line. It reports quit once the macro has been told to stop.
func (c *controller) handle(line string) (quit bool, err error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return false, errors.Wrapf(errors.Mark(err, errors.ErrInvalidArgument), "parse %q", line)
	}
	if len(words) == 0 {
		return false, nil
	}

	switch strings.ToLower(words[0]) {
	case "pause", "p":
		if err := c.ctl.Pause(); err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, "paused")
	case "resume", "r":
		if err := c.ctl.Resume(); err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, "resumed")
	case "toggle", "t":
		status, err := c.ctl.TogglePause()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, strings.ToLower(status.String()))
	case "status", "s":
		status := strings.ToLower(c.ctl.Status().String())
		if c.progress != nil {
			if n, ok := c.progress(); ok {
				fmt.Fprintf(c.out, "%s, %d clicks\n", status, n)
				return false, nil
			}
		}
		fmt.Fprintln(c.out, status)
	case "stop", "quit", "q":
		c.ctl.Stop()
		return true, nil
	case "help", "?":
		fmt.Fprintln(c.out, controllerHelp)
	default:
		return false, errors.WithHint(
			errors.NewInvalidArgumentError("unknown command %q", words[0]),
			controllerHelp)
	}
	return false, nil
}

// serve reads lines from r until EOF, ctx is done, or a stop command.
// Errors for individual lines are written to out and do not end the loop.
func (c *controller) serve(ctx context.Context, r io.Reader) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			quit, err := c.handle(line)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
			if quit {
				return
			}
		}
	}
}
