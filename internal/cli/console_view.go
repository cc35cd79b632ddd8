package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/yildizm/CityReport/internal/controller"
	"github.com/yildizm/CityReport/internal/emoji"
	"github.com/yildizm/CityReport/internal/render"
	"github.com/yildizm/CityReport/internal/ui"
)

// consoleView prints controller updates as status lines. Result panels are
// not printed here; the formatter writes the result once the request ends.
type consoleView struct {
	mu     sync.Mutex
	w      io.Writer
	styles *ui.Styles
}

func newConsoleView(w io.Writer, color bool) *consoleView {
	return &consoleView{w: w, styles: ui.NewStyles(ui.DefaultTheme, color)}
}

func (v *consoleView) SetSubmitEnabled(bool)  {}
func (v *consoleView) SetResultsVisible(bool) {}
func (v *consoleView) SetSummary(string)      {}
func (v *consoleView) SetReport(string)       {}
func (v *consoleView) SetLinks(string)        {}
func (v *consoleView) SetPDFs(string)         {}

func (v *consoleView) SetStatus(text string, tone controller.Tone) {
	v.println(toneEmoji(tone) + " " + v.styles.Status(tone).Render(text))
}

func (v *consoleView) SetErrorDetails(html string) {
	v.println(render.MustText(html, render.PlainText))
}

func (v *consoleView) Alert(message string) {
	v.println(emoji.GetEmoji("warning") + " " + v.styles.Warning.Render(message))
}

func (v *consoleView) println(line string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, _ = fmt.Fprintln(v.w, line)
}

func toneEmoji(tone controller.Tone) string {
	switch tone {
	case controller.ToneBusy:
		return emoji.GetEmoji("busy")
	case controller.ToneSuccess:
		return emoji.GetEmoji("success")
	case controller.ToneError:
		return emoji.GetEmoji("error")
	default:
		return emoji.GetEmoji("info")
	}
}
