package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/CityReport/internal/controller"
	"github.com/yildizm/CityReport/internal/ui"
)

var (
	tuiEndpoint string
	tuiLayout   string
	tuiTheme    string
	tuiLogFile  string
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [city]",
		Short: "Open the interactive analysis form",
		Long: `Open the interactive form: type a city name and press enter to start an
analysis. The form stays open between requests.

Keys:
  enter      submit the city
  tab        open the details view (modal layout, after a successful run)
  up/down    scroll results
  esc        clear the input, or close the details view
  ctrl+c     quit (cancels a running request)`,
		Args: cobra.ArbitraryArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiEndpoint, "endpoint", "", "full analysis endpoint URL (overrides server.base_url and server.path)")
	cmd.Flags().StringVar(&tuiLayout, "layout", "", "result layout (panels, modal)")
	cmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write diagnostics to this file instead of stderr")
	cmd.Flags().StringVar(&tuiTheme, "theme", "", fmt.Sprintf("color theme (%s)", strings.Join(ui.GetAvailableThemes(), ", ")))

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	layout, err := resolveLayout(cfg, tuiLayout)
	if err != nil {
		return err
	}
	theme := tuiTheme
	if theme == "" {
		theme = cfg.UI.Theme
	}

	log := newLogger("tui")
	if tuiLogFile != "" {
		f, err := os.OpenFile(filepath.Clean(tuiLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(f)
	}
	client, err := newClient(cfg, tuiEndpoint, log)
	if err != nil {
		return err
	}

	return ui.Run(ui.Options{
		Runner: client,
		Controller: []controller.Option{
			controller.WithTimeout(cfg.Request.Timeout),
			controller.WithLogger(log.WithComponent("controller")),
			controller.WithLayout(layout),
		},
		Theme:     theme,
		Color:     colorEnabled(os.Stdout),
		City:      strings.Join(args, " "),
		AltScreen: true,
	})
}
