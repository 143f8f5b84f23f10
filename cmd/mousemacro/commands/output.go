// Package commands implements the mousemacro CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/teranos/mousemacro/config"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/logger"
)

// PrintError reports a command failure with any hints attached to it.
// At -vv and above the full stack is printed as well.
func PrintError(err error) {
	printError(os.Stderr, err, logger.Verbosity)
}

func printError(w io.Writer, err error, verbosity int) {
	if logger.JSONOutput {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": err.Error(),
			"hints": errors.GetAllHints(err),
		})
		return
	}
	pterm.Error.WithWriter(w).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.WithWriter(w).Println(hint)
	}
	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		fmt.Fprintf(w, "%+v\n", err)
	}
}

// loadConfig loads the layered config, applies the log theme and validates it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if cfg.Log.Theme != "" {
		logger.SetTheme(cfg.Log.Theme)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"run 'mousemacro config show --sources' to see where each value comes from")
	}
	logger.Debugw("Configuration loaded", "files", config.LoadedFiles())
	return cfg, nil
}
