package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/CityReport/internal/controller"
)

// Messages posted by ProgramView; each mirrors one controller.View call
type (
	submitEnabledMsg  bool
	resultsVisibleMsg bool
	summaryMsg        string
	reportMsg         string
	linksMsg          string
	pdfsMsg           string
	errorDetailsMsg   string
	alertMsg          string
)

type statusMsg struct {
	text string
	tone controller.Tone
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgramView implements controller.View by queueing messages for the
// bubbletea update loop, so every state mutation happens there. The queue
// exists before the program runs; the model drains it with Listen.
type ProgramView struct {
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once
}

// NewProgramView creates an open view
func NewProgramView() *ProgramView {
	return &ProgramView{
		msgs: make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

func (v *ProgramView) post(msg tea.Msg) {
	select {
	case v.msgs <- msg:
	case <-v.done:
	}
}

// Listen waits for the next view message
func (v *ProgramView) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-v.msgs:
			return msg
		case <-v.done:
			return nil
		}
	}
}

// Close drops further view updates; call once the program has exited
func (v *ProgramView) Close() {
	v.once.Do(func() { close(v.done) })
}

func (v *ProgramView) SetSubmitEnabled(enabled bool)  { v.post(submitEnabledMsg(enabled)) }
func (v *ProgramView) SetResultsVisible(visible bool) { v.post(resultsVisibleMsg(visible)) }
func (v *ProgramView) SetSummary(text string)         { v.post(summaryMsg(text)) }
func (v *ProgramView) SetReport(html string)          { v.post(reportMsg(html)) }
func (v *ProgramView) SetLinks(html string)           { v.post(linksMsg(html)) }
func (v *ProgramView) SetPDFs(html string)            { v.post(pdfsMsg(html)) }
func (v *ProgramView) SetErrorDetails(html string)    { v.post(errorDetailsMsg(html)) }
func (v *ProgramView) Alert(message string)           { v.post(alertMsg(message)) }

func (v *ProgramView) SetStatus(text string, tone controller.Tone) {
	v.post(statusMsg{text: text, tone: tone})
}
