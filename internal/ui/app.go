package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/controller"
	"github.com/yildizm/CityReport/internal/emoji"
	"github.com/yildizm/CityReport/internal/render"
)

// Model is the interactive city analysis form
type Model struct {
	ctrl        *controller.Controller
	view        *ProgramView
	submissions chan<- string
	styles      *Styles
	textStyle   render.TextStyle

	width  int
	height int
	ready  bool

	input []rune

	submitEnabled  bool
	status         string
	tone           controller.Tone
	alert          string
	resultsVisible bool
	summary        string
	report         string
	links          string
	pdfs           string
	errorDetails   string

	spinnerFrame  int
	scroll        int
	modalSelected int
	quitting      bool
	autoSubmit    bool
}

// NewModel creates the model. Submitted city names go to submissions, which
// the controller is bound to; view is the controller's ProgramView.
func NewModel(ctrl *controller.Controller, view *ProgramView, submissions chan<- string, styles *Styles, city string) *Model {
	m := &Model{
		ctrl:          ctrl,
		view:          view,
		submissions:   submissions,
		styles:        styles,
		input:         []rune(city),
		submitEnabled: true,
		status:        "Enter a city name and press enter",
	}
	m.textStyle = render.TextStyle{
		Bullet:  "• ",
		Heading: func(_ int, text string) string { return styles.Header.Render(text) },
		Strong:  func(text string) string { return lipgloss.NewStyle().Bold(true).Render(text) },
	}
	return m
}

// SubmitOnStart makes Init submit the pre-filled city
func (m *Model) SubmitOnStart() {
	m.autoSubmit = true
}

// Init starts listening for controller updates
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.view.Listen(), tick()}
	if m.autoSubmit {
		_, submit := m.submit()
		cmds = append(cmds, submit)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case submitEnabledMsg, resultsVisibleMsg, summaryMsg, reportMsg, linksMsg,
		pdfsMsg, errorDetailsMsg, alertMsg, statusMsg:
		m.applyViewMsg(msg)
		return m, m.view.Listen()
	}
	return m, nil
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.submitEnabled {
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerChars)
	}
	return m, tick()
}

func (m *Model) applyViewMsg(msg tea.Msg) {
	switch msg := msg.(type) {
	case submitEnabledMsg:
		m.submitEnabled = bool(msg)
	case statusMsg:
		m.status, m.tone = msg.text, msg.tone
	case resultsVisibleMsg:
		m.resultsVisible = bool(msg)
		m.scroll = 0
	case summaryMsg:
		m.summary = string(msg)
	case reportMsg:
		m.report = m.text(string(msg))
	case linksMsg:
		m.links = m.text(string(msg))
	case pdfsMsg:
		m.pdfs = m.text(string(msg))
	case errorDetailsMsg:
		m.errorDetails = m.text(string(msg))
	case alertMsg:
		m.alert = string(msg)
	}
}

func (m *Model) text(fragment string) string {
	if fragment == "" {
		return ""
	}
	return render.MustText(fragment, m.textStyle)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// any key acknowledges an alert
	if m.alert != "" {
		m.alert = ""
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
			return m, nil
		}
	}

	if m.ctrl.Details().IsOpen() {
		return m.handleModalKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		if m.ctrl.Layout() == controller.LayoutModal && m.ctrl.OpenDetails() {
			m.modalSelected = 0
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeyCtrlU:
		m.input = nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	case tea.KeyUp, tea.KeyPgUp:
		if m.scroll > 0 {
			m.scroll--
		}
	case tea.KeyDown, tea.KeyPgDown:
		m.scroll++
	case tea.KeyEsc:
		m.input = nil
	}
	return m, nil
}

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	details := m.ctrl.Details()
	switch msg.String() {
	case "esc", "q":
		details.Close()
	case "up", "k":
		if m.modalSelected > 0 {
			m.modalSelected--
		}
	case "down", "j":
		if m.modalSelected < len(controller.Panels)-1 {
			m.modalSelected++
		}
	case "enter", " ":
		details.Toggle(controller.Panels[m.modalSelected])
	}
	return m, nil
}

// submit hands the city to the bound controller. While Loading the submit
// control is disabled and enter does nothing.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if !m.submitEnabled {
		return m, nil
	}
	city := string(m.input)
	submissions := m.submissions
	done := m.view.done
	return m, func() tea.Msg {
		select {
		case submissions <- city:
		case <-done:
		}
		return nil
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return m.styles.Success.Render("Goodbye! "+emoji.GetEmoji("door")) + "\n"
	}
	if m.ctrl.Details().IsOpen() {
		return m.renderModal()
	}

	sections := []string{
		m.styles.Title.Render(emoji.GetEmoji("city") + " CityReport"),
		m.renderInput(),
		m.renderStatus(),
	}
	if m.alert != "" {
		sections = append(sections, m.styles.Warning.Render(emoji.GetEmoji("warning")+" "+m.alert))
	}
	if m.resultsVisible {
		sections = append(sections, m.renderResults())
	}
	sections = append(sections, m.renderFooter())

	return m.clip(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderInput() string {
	cursor := "█"
	if !m.submitEnabled {
		cursor = ""
	}
	content := "City: " + string(m.input) + cursor
	style := m.styles.Input
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(content)
}

func (m *Model) renderStatus() string {
	text := m.status
	if !m.submitEnabled {
		text = spinnerChars[m.spinnerFrame] + " " + text
	}
	return m.styles.Status(m.tone).Render(text)
}

func (m *Model) renderResults() string {
	if m.errorDetails != "" {
		return m.panel(m.errorDetails)
	}

	if m.ctrl.Layout() == controller.LayoutModal {
		line := emoji.GetEmoji("summary") + " " + m.summary
		return m.panel(line + "\n" + m.styles.Muted.Render("press tab for details"))
	}

	var parts []string
	for _, body := range []string{m.report, m.links, m.pdfs} {
		if body != "" {
			parts = append(parts, m.panel(body))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) panel(body string) string {
	style := m.styles.Panel
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(body)
}

func (m *Model) renderModal() string {
	result := m.ctrl.State().Result
	details := m.ctrl.Details()

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(emoji.GetEmoji("details")+" Analysis details") + "\n\n")
	for i, p := range controller.Panels {
		marker := "▸"
		if details.Expanded(p) {
			marker = "▾"
		}
		label := fmt.Sprintf("%s %s", marker, panelTitle(p))
		if i == m.modalSelected {
			label = m.styles.Selected.Render(label)
		}
		b.WriteString(label + "\n")
		if details.Expanded(p) {
			b.WriteString(indent(m.text(panelHTML(p, result)), "  ") + "\n")
		}
	}
	b.WriteString("\n" + m.styles.Muted.Render("↑/↓ select • enter toggle • esc close"))

	style := m.styles.Modal
	if m.width > 6 {
		style = style.Width(m.width - 6)
	}
	return m.clip(style.Render(b.String()))
}

func (m *Model) renderFooter() string {
	help := "enter: analyze • ctrl+c: quit"
	if m.ctrl.Layout() == controller.LayoutModal {
		help = "enter: analyze • tab: details • ctrl+c: quit"
	}
	return m.styles.Muted.Render(help + " • " + m.ctrl.Metrics().Snapshot().String())
}

// clip scrolls and trims the rendered screen to the window height
func (m *Model) clip(screen string) string {
	if !m.ready || m.height <= 0 {
		return screen
	}
	lines := strings.Split(screen, "\n")
	if len(lines) <= m.height {
		return screen
	}
	maxScroll := len(lines) - m.height
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	return strings.Join(lines[m.scroll:m.scroll+m.height], "\n")
}

func panelTitle(p controller.Panel) string {
	switch p {
	case controller.PanelReport:
		return "Report"
	case controller.PanelLinks:
		return "Relevant links"
	case controller.PanelPDFs:
		return "Downloaded PDFs"
	case controller.PanelStatistics:
		return "Processing statistics"
	default:
		return string(p)
	}
}

func panelHTML(p controller.Panel, result *analysis.Result) string {
	if result == nil {
		return render.NoReportHTML
	}
	switch p {
	case controller.PanelReport:
		if result.Report == "" {
			return render.NoReportHTML
		}
		return render.MarkdownToHTML(result.Report)
	case controller.PanelLinks:
		return render.LinksHTML(result.RelevantLinks)
	case controller.PanelPDFs:
		return render.PDFsHTML(result.PDFDownloads)
	case controller.PanelStatistics:
		return render.StatisticsHTML(result.Stats())
	default:
		return ""
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
