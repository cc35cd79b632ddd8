package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/CityReport/internal/controller"
)

// Options configure an interactive session
type Options struct {
	Runner     controller.Runner
	Controller []controller.Option
	Theme      string
	Color      bool
	// City pre-fills the input
	City string
	// AutoSubmit submits City as soon as the UI starts
	AutoSubmit bool
	// AltScreen runs the program in the alternate screen buffer
	AltScreen bool
}

// Run starts the interactive UI and blocks until the user quits. Quitting
// disposes the controller binding, which cancels an in-flight request.
func Run(opts Options) error {
	theme, ok := ThemeByName(opts.Theme)
	if !ok {
		return fmt.Errorf("unknown theme %q (valid: %v)", opts.Theme, GetAvailableThemes())
	}
	styles := NewStyles(theme, opts.Color && !IsColorDisabled())

	view := NewProgramView()
	ctrl := controller.New(opts.Runner, view, opts.Controller...)
	submissions := make(chan string)
	dispose := ctrl.Bind(submissions)

	model := NewModel(ctrl, view, submissions, styles, opts.City)
	if opts.AutoSubmit {
		model.SubmitOnStart()
	}

	var programOpts []tea.ProgramOption
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)

	_, err := p.Run()
	view.Close()
	dispose()
	if err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
