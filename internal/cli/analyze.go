package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/config"
	"github.com/yildizm/CityReport/internal/controller"
	"github.com/yildizm/CityReport/internal/logger"
	"github.com/yildizm/CityReport/internal/ui"
)

var (
	analyzeTimeout    time.Duration
	analyzeEndpoint   string
	analyzeLayout     string
	analyzeNoTUI      bool
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <city>",
		Short: "Run one analysis for a city",
		Long: `Send one analysis request for a city and render the result.

The backend crawls and filters sources for the city, which usually takes
10-15 minutes. Progress is shown on stderr; the formatted result goes to
stdout or --output-file.

Examples:
  cityreport analyze Sapporo
  cityreport analyze --no-tui -o markdown --output-file sapporo.md Sapporo
  cityreport analyze --endpoint http://analysis.internal:8000/api/run-analysis Kobe`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", config.DefaultRequestTimeout, "client-side deadline for the request")
	cmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "full analysis endpoint URL (overrides server.base_url and server.path)")
	cmd.Flags().StringVar(&analyzeLayout, "layout", "", "result layout in the terminal UI (panels, modal)")
	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "disable terminal UI, output to stdout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	city := strings.Join(args, " ")

	if !cmd.Flag("timeout").Changed {
		analyzeTimeout = cfg.Request.Timeout
	}
	layout, err := resolveLayout(cfg, analyzeLayout)
	if err != nil {
		return err
	}

	log := newLogger("analyze")
	client, err := newClient(cfg, analyzeEndpoint, log)
	if err != nil {
		return err
	}

	ctrlOpts := []controller.Option{
		controller.WithTimeout(analyzeTimeout),
		controller.WithLogger(log.WithComponent("controller")),
		controller.WithLayout(layout),
	}

	if shouldUseTUI(isTerminal(os.Stdout)) {
		return ui.Run(ui.Options{
			Runner:     client,
			Controller: ctrlOpts,
			Theme:      cfg.UI.Theme,
			Color:      colorEnabled(os.Stdout),
			City:       city,
			AutoSubmit: true,
			AltScreen:  true,
		})
	}

	return runAnalyzeOnce(cmd, client, ctrlOpts, city, log)
}

// runAnalyzeOnce drives the controller against the console view and writes
// the formatted result
func runAnalyzeOnce(cmd *cobra.Command, runner controller.Runner, opts []controller.Option, city string, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := newConsoleView(cmd.ErrOrStderr(), colorEnabled(os.Stderr))
	ctrl := controller.New(runner, view, opts...)

	if err := ctrl.Submit(ctx, city); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	state := ctrl.State()
	log.DebugWithFields("request metrics", []logger.Field{
		logger.F("session", ctrl.Metrics().Snapshot().String()),
	})

	output, err := formatResult(state.Result, getOutputFormat(), state.City, colorEnabled(os.Stdout) && analyzeOutputFile == "")
	if err != nil {
		return err
	}
	return handleOutputDestination(cmd.OutOrStdout(), output, analyzeOutputFile)
}

// shouldUseTUI decides whether to launch the interactive UI
func shouldUseTUI(stdoutIsTerminal bool) bool {
	return !analyzeNoTUI && getOutputFormat() == "text" && analyzeOutputFile == "" && !isVerbose() && stdoutIsTerminal
}

func newClient(cfg *config.Config, endpoint string, log *logger.Logger) (*analysis.Client, error) {
	if endpoint == "" {
		endpoint = cfg.Endpoint()
	}
	// the controller owns the deadline
	client, err := analysis.NewClient(endpoint,
		analysis.WithTimeout(0),
		analysis.WithUserAgent(cfg.Server.UserAgent),
		analysis.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	return client, nil
}

func resolveLayout(cfg *config.Config, flag string) (controller.Layout, error) {
	value := flag
	if value == "" {
		value = cfg.UI.Layout
	}
	if value == "" {
		return controller.LayoutModal, nil
	}
	return controller.ParseLayout(value)
}
