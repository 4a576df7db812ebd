package commands

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/dimcheck/internal/cli/output"
	"github.com/leapstack-labs/dimcheck/internal/model"
	"github.com/spf13/cobra"
)

// debounceDelay coalesces bursts of filesystem events into one re-check.
const debounceDelay = 250 * time.Millisecond

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var (
		jobs  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check equation files for dimensional consistency",
		Long: `Check validates every equation in the given model files against the
declared variables and functions. Without arguments, all model files
under the models directory are checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			runner := model.NewRunner(cmdCtx.Table, jobs)

			if watch {
				return watchAndCheck(cmd, cmdCtx, runner, args)
			}

			result, err := runOnce(cmd, cmdCtx, runner, args)
			if err != nil {
				return err
			}
			if n := result.ErrorCount(); n > 0 {
				return fmt.Errorf("check failed with %d error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of files to check in parallel (default: number of CPUs)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-check whenever model files change")

	return cmd
}

// resolvePaths returns the files to check: explicit arguments, or every
// model file under the configured models directory.
func resolvePaths(cmdCtx *CommandContext, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	paths, err := model.Discover(cmdCtx.Cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover models in %s: %w", cmdCtx.Cfg.ModelsDir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no model files found in %s", cmdCtx.Cfg.ModelsDir)
	}
	return paths, nil
}

func runOnce(cmd *cobra.Command, cmdCtx *CommandContext, runner *model.Runner, args []string) (*model.RunResult, error) {
	paths, err := resolvePaths(cmdCtx, args)
	if err != nil {
		return nil, err
	}

	cmdCtx.Logger.Debug("checking models", "files", len(paths))
	result, err := runner.Run(cmd.Context(), paths)
	if err != nil {
		return nil, err
	}
	cmdCtx.Logger.Debug("check finished",
		"run_id", result.ID, "errors", result.ErrorCount(), "duration", result.Duration)

	if cmdCtx.Renderer.Mode() == output.ModeJSON {
		enc := json.NewEncoder(cmdCtx.Renderer.Writer())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return nil, err
		}
		return result, nil
	}

	renderRunText(cmdCtx.Renderer, result)
	return result, nil
}

// renderRunText renders a run report: one line per diagnostic, then a
// summary table.
func renderRunText(r *output.Renderer, result *model.RunResult) {
	styles := r.Styles()

	for _, file := range result.Files {
		if file.LoadError != "" {
			r.Printf("%s %s: %s\n", styles.Error.Render("error"), file.Path, file.LoadError)
			continue
		}
		for _, d := range file.Diagnostics {
			style := styles.Info
			if d.Severity == model.SeverityError {
				style = styles.Error
			}
			r.Printf("%s %s: %s: %s\n", style.Render(d.Severity.String()), d.File, d.Equation, d.Message)
		}
	}

	t := r.NewTable()
	t.AppendHeader(table.Row{"model", "file", "equations", "errors"})
	for _, file := range result.Files {
		t.AppendRow(table.Row{file.Model, file.Path, file.Checked, file.ErrorCount()})
	}
	t.Render()

	if n := result.ErrorCount(); n > 0 {
		r.Printf("%s %d error(s) in %s\n", styles.Error.Render("FAIL"), n, result.Duration.Round(time.Millisecond))
	} else {
		r.Printf("%s %d file(s) checked in %s\n", styles.Success.Render("OK"), len(result.Files), result.Duration.Round(time.Millisecond))
	}
}

// watchAndCheck re-runs the check whenever a model file changes.
// Diagnostics do not end the loop; only context cancellation does.
func watchAndCheck(cmd *cobra.Command, cmdCtx *CommandContext, runner *model.Runner, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchDirs(watcher, cmdCtx.Cfg.ModelsDir); err != nil {
		return err
	}

	if _, err := runOnce(cmd, cmdCtx, runner, args); err != nil {
		return err
	}
	cmdCtx.Renderer.Errorf("watching %s for changes...\n", cmdCtx.Cfg.ModelsDir)

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isModelEvent(event) {
				continue
			}
			// New directories must be picked up for recursive watching.
			if event.Has(fsnotify.Create) {
				_ = addWatchDirs(watcher, event.Name)
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Warn("watch error", "error", err)

		case <-rerun:
			if _, err := runOnce(cmd, cmdCtx, runner, args); err != nil {
				cmdCtx.Renderer.Errorf("error: %v\n", err)
			}
		}
	}
}

// addWatchDirs registers dir and every subdirectory with the watcher.
func addWatchDirs(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}

// isModelEvent reports whether the event concerns a model file or a
// directory change worth re-checking.
func isModelEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".yaml", ".yml", "":
		return true
	}
	return false
}
