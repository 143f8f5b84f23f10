package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/internal/util"
	"github.com/teranos/mousemacro/journal"
	"github.com/teranos/mousemacro/logger"
	"github.com/teranos/mousemacro/sym"
)

// JournalCmd represents the journal command
var JournalCmd = &cobra.Command{
	Use:   "journal",
	Short: sym.DB + " Inspect past runs",
	Long: sym.DB + ` journal - Inspect the history of macro runs

Every run is recorded in journal.path (SQLite) with its macro, outcome and
click count. Macro definitions themselves are not stored.

Examples:
  mousemacro journal ls                # Last 20 runs
  mousemacro journal ls --limit 5
  mousemacro journal show <run-id>`,
}

var journalLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent runs, newest first",
	RunE:  runJournalLs,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalLimit int

func init() {
	journalLsCmd.Flags().IntVar(&journalLimit, "limit", journal.DefaultListLimit, "Number of runs to show")

	JournalCmd.AddCommand(journalLsCmd)
	JournalCmd.AddCommand(journalShowCmd)
}

// openJournalForRead opens the journal named by config; a missing file is reported, not created.
func openJournalForRead() (*journal.Store, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if _, err := os.Stat(cfg.Journal.Path); err != nil {
		return nil, nil, errors.WithHint(errors.Wrapf(err, "journal %s", cfg.Journal.Path),
			"the journal is created by the first 'mousemacro run'")
	}
	return openJournal(cfg, logger.ComponentLogger("journal"))
}

func runJournalLs(cmd *cobra.Command, args []string) error {
	store, closeJournal, err := openJournalForRead()
	if err != nil {
		return err
	}
	defer closeJournal()

	runs, err := store.ListRuns(cmd.Context(), journalLimit)
	if err != nil {
		return err
	}
	return writeRuns(cmd.OutOrStdout(), runs)
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	store, closeJournal, err := openJournalForRead()
	if err != nil {
		return err
	}
	defer closeJournal()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	run, err := store.GetRun(ctx, args[0])
	if err != nil {
		return err
	}
	return writeRun(cmd.OutOrStdout(), run)
}

// Widest error column in journal ls.
const maxErrorColumn = 40

func writeRuns(w io.Writer, runs []*journal.Run) error {
	if logger.JSONOutput {
		if runs == nil {
			runs = []*journal.Run{}
		}
		return json.NewEncoder(w).Encode(runs)
	}
	if len(runs) == 0 {
		pterm.Info.WithWriter(w).Println("No runs recorded yet")
		return nil
	}

	data := pterm.TableData{{"ID", "Macro", "Action", "Status", "Clicks", "Started", "Duration", "Error"}}
	for _, r := range runs {
		data = append(data, []string{
			shortID(r.ID),
			r.MacroName,
			actionLabel(r),
			string(r.Status),
			clicksLabel(r),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			durationLabel(r),
			errorLabel(r, maxErrorColumn),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func writeRun(w io.Writer, r *journal.Run) error {
	if logger.JSONOutput {
		return json.NewEncoder(w).Encode(r)
	}
	data := pterm.TableData{
		{"ID", r.ID},
		{"Macro", r.MacroName},
		{"Action", actionLabel(r)},
		{"Position", r.PositionPolicy},
		{"Status", string(r.Status)},
		{"Clicks", clicksLabel(r)},
		{"Started", r.StartedAt.Local().Format(time.RFC3339)},
		{"Duration", durationLabel(r)},
	}
	if r.FinishedAt != nil {
		data = append(data, []string{"Finished", r.FinishedAt.Local().Format(time.RFC3339)})
	}
	if r.ErrorMessage != nil {
		data = append(data, []string{"Error", *r.ErrorMessage})
	}
	return pterm.DefaultTable.WithWriter(w).WithData(data).Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func actionLabel(r *journal.Run) string {
	if r.HoldMS > 0 {
		return fmt.Sprintf("hold %s %dms", r.Button, r.HoldMS)
	}
	if r.ClickCount == 2 {
		return "double " + r.Button
	}
	if r.ClickCount > 2 {
		return fmt.Sprintf("%dx %s", r.ClickCount, r.Button)
	}
	return r.Button
}

func clicksLabel(r *journal.Run) string {
	if r.RepeatCount == 0 {
		return strconv.Itoa(r.ClicksExecuted)
	}
	return fmt.Sprintf("%d/%d", r.ClicksExecuted, r.RepeatCount)
}

func durationLabel(r *journal.Run) string {
	if r.DurationMS == nil {
		return "-"
	}
	return (time.Duration(*r.DurationMS) * time.Millisecond).String()
}

func errorLabel(r *journal.Run, n int) string {
	if r.ErrorMessage == nil {
		return ""
	}
	return util.Truncate(*r.ErrorMessage, n)
}
