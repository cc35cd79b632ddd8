package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yildizm/CityReport/internal/logger"
)

var (
	renderWatch      bool
	renderInterval   time.Duration
	renderOutputFile string
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <response.json>",
		Short: "Render a saved analysis response",
		Long: `Render a saved analysis response body without contacting the server.

Both the current payload and the older {zone_report, sources_report} payload
are accepted. With --watch the file is re-rendered whenever it changes;
bursts of writes are coalesced to at most one render per --interval.
Press Ctrl+C to stop watching.

Examples:
  cityreport render sapporo.json
  cityreport render -o html --output-file sapporo.html sapporo.json
  cityreport render --watch sapporo.json`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}

	cmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "re-render when the file changes")
	cmd.Flags().DurationVar(&renderInterval, "interval", 500*time.Millisecond, "minimum time between renders in watch mode")
	cmd.Flags().StringVar(&renderOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	path := filepath.Clean(args[0])
	out := cmd.OutOrStdout()

	if !renderWatch {
		return renderFile(out, path)
	}

	log := newLogger("render")
	if err := renderFile(out, path); err != nil {
		log.Warn("initial render failed: %v", err)
	}

	watcher, err := createWatcher(path)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", path)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	limiter := rate.NewLimiter(rate.Every(renderInterval), 1)
	return watchLoop(ctx, watcher.Events, watcher.Errors, path, limiter, func() {
		if err := renderFile(out, path); err != nil {
			// a writer may still be mid-save; the next event re-renders
			log.WarnWithFields("render failed", []logger.Field{logger.F("file", path), logger.Error(err)})
		}
	})
}

// renderFile formats the saved response at path to out or --output-file
func renderFile(out io.Writer, path string) error {
	result, err := readResultFile(path)
	if err != nil {
		return err
	}

	color := renderOutputFile == "" && colorEnabled(os.Stdout)
	output, err := formatResult(result, getOutputFormat(), "", color)
	if err != nil {
		return err
	}
	return handleOutputDestination(out, output, renderOutputFile)
}

// createWatcher watches the directory holding filename so that editors
// replacing the file by rename are still seen
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot watch directory, must be a file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// watchLoop calls render after changes to target until ctx is done. Renders
// are spaced by limiter; events arriving while one is pending are absorbed.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, limiter *rate.Limiter, render func()) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isChange(event, target) || pending != nil {
				continue
			}
			timer = time.NewTimer(limiter.Reserve().Delay())
			pending = timer.C

		case <-pending:
			pending = nil
			render()

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

func isChange(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
