package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/emoji"
	"github.com/yildizm/CityReport/internal/render"
)

// terminalFormatter formats output as text for terminal display using go-termfmt
type terminalFormatter struct {
	opts  *termfmt.TerminalOptions
	city  string
	style render.TextStyle
	bold  lipgloss.Style
}

// NewTerminal creates a new terminal formatter. Section symbols follow the
// process-wide emoji setting; o.Emoji drives go-termfmt's own symbols.
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji

	f := &terminalFormatter{
		opts:  opts,
		city:  o.City,
		style: render.PlainText,
		bold:  lipgloss.NewStyle(),
	}
	if o.Color {
		f.bold = lipgloss.NewStyle().Bold(true)
		heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#66B3FF"})
		link := lipgloss.NewStyle().Underline(true)
		f.style = render.TextStyle{
			Bullet:  "• ",
			Heading: func(_ int, text string) string { return heading.Render(text) },
			Strong:  func(text string) string { return f.bold.Render(text) },
			Link: func(text, href string) string {
				if text == href {
					return link.Render(href)
				}
				return text + " <" + link.Render(href) + ">"
			},
		}
	}
	return f
}

func (f *terminalFormatter) Format(result *analysis.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}

	var b strings.Builder

	f.writeHeader(&b)
	f.writeSummary(&b, result)
	if err := f.writeReport(&b, result); err != nil {
		return nil, err
	}
	if result.Statistics != nil {
		f.writeStatistics(&b, *result.Statistics)
	}
	f.writeLinks(&b, result.RelevantLinks)
	f.writePDFs(&b, result.PDFDownloads)

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// writeHeader writes the boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := title(f.city)
	width := lipgloss.Width(header)

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

func (f *terminalFormatter) section(b *strings.Builder, key, name string) {
	b.WriteString(emoji.GetEmoji(key) + " " + f.bold.Render(name) + "\n")
}

func (f *terminalFormatter) writeSummary(b *strings.Builder, result *analysis.Result) {
	f.section(b, "summary", "Summary")
	b.WriteString(summaryText(result) + "\n\n")
}

// writeReport flattens the rendered markdown so terminal output matches
// the HTML view line for line
func (f *terminalFormatter) writeReport(b *strings.Builder, result *analysis.Result) error {
	f.section(b, "report", "Report")
	if result.Report == "" {
		b.WriteString(render.MustText(render.NoReportHTML, f.style) + "\n\n")
		return nil
	}

	text, err := render.HTMLToText(render.MarkdownToHTML(result.Report), f.style)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	b.WriteString(text + "\n\n")
	return nil
}

// writeStatistics writes the crawl counters as a tree using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, stats analysis.Statistics) {
	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " " + f.bold.Render("Processing statistics") + "\n")

	rows := render.StatisticsRows(stats)
	items := make([]termfmt.TreeItem, 0, len(rows)+1)
	for _, row := range rows {
		items = append(items, termfmt.TreeItem{Label: row.Label, Value: formatNumber(row.Value)})
	}
	if ratio, ok := relevanceRatio(stats); ok {
		items = append(items, termfmt.TreeItem{
			Label: "Relevance",
			Value: fmt.Sprintf("%s %.0f%%", termfmt.CreateConfidenceBar(ratio, f.opts), ratio*100),
		})
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeLinks(b *strings.Builder, links []analysis.RelevantLink) {
	if len(links) == 0 {
		f.section(b, "link", "No relevant links found")
		b.WriteString("The AI filter may have been too strict. Try another city.\n\n")
		return
	}

	f.section(b, "link", fmt.Sprintf("Relevant links (%d)", len(links)))
	items := make([]termfmt.TreeItem, 0, len(links))
	for i, link := range links {
		value := link.URL
		if link.Downloaded {
			value += " " + emoji.GetEmoji("downloaded")
		}
		items = append(items, termfmt.TreeItem{
			Label: emoji.ForLinkType(link.LinkType()) + " " + link.LinkType(),
			Value: value,
			Last:  i == len(links)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writePDFs(b *strings.Builder, pdfs []analysis.PDFDownload) {
	if len(pdfs) == 0 {
		f.section(b, "pdf", "No PDF files could be downloaded")
		b.WriteString("\n")
		return
	}

	f.section(b, "pdf", fmt.Sprintf("Downloaded PDF files (%d)", len(pdfs)))
	items := make([]termfmt.TreeItem, 0, len(pdfs))
	for i, pdf := range pdfs {
		item := termfmt.TreeItem{
			Label: pdf.Filename,
			Value: pdf.LocalPath,
			Last:  i == len(pdfs)-1,
		}
		if pdf.OriginalURL != "" {
			item.Children = []termfmt.TreeItem{{Label: "original", Value: pdf.OriginalURL, Last: true}}
		}
		items = append(items, item)
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}
