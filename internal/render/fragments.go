package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/yildizm/CityReport/internal/analysis"
)

// Placeholder and empty-state fragments
const (
	NoReportHTML  = "<p>No report data</p>"
	NoLinksHTML   = "<h3>No relevant links found</h3><p>The AI filter may have been too strict. Try another city.</p>"
	NoPDFsHTML    = "<h3>No PDF files could be downloaded</h3>"
	linksHeading  = "<h3>Relevant links</h3>"
	pdfsHeading   = "<h3>Downloaded PDF files</h3>"
	downloadedTag = `<span class="downloaded">[downloaded]</span>`
)

// ErrorTips are the remediation hints shown under a failure
var ErrorTips = []string{
	"Reload the page and try again",
	"Try a different city name",
	"Wait a while before retrying",
	"If the problem persists, check the diagnostics log (--verbose)",
}

// ReportHTML renders the report body followed by the statistics block when
// the payload carried statistics
func ReportHTML(result *analysis.Result) string {
	if result == nil {
		return NoReportHTML
	}

	var b strings.Builder
	if result.Report != "" {
		b.WriteString(MarkdownToHTML(result.Report))
	} else {
		b.WriteString(NoReportHTML)
	}

	if result.Statistics != nil {
		b.WriteString(StatisticsHTML(*result.Statistics))
	}
	return b.String()
}

// LinksHTML renders one list entry per relevant link
func LinksHTML(links []analysis.RelevantLink) string {
	if len(links) == 0 {
		return NoLinksHTML
	}

	var b strings.Builder
	b.WriteString(linksHeading)
	b.WriteString("<ul>")
	for _, link := range links {
		url := html.EscapeString(link.URL)
		fmt.Fprintf(&b, `<li><strong>%s</strong>: <a href="%s" target="_blank" rel="noopener">%s</a>`,
			html.EscapeString(link.LinkType()), url, url)
		if link.Downloaded {
			b.WriteString(" " + downloadedTag)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// PDFsHTML renders one list entry per downloaded PDF
func PDFsHTML(pdfs []analysis.PDFDownload) string {
	if len(pdfs) == 0 {
		return NoPDFsHTML
	}

	var b strings.Builder
	b.WriteString(pdfsHeading)
	b.WriteString("<ul>")
	for _, pdf := range pdfs {
		fmt.Fprintf(&b, `<li><a href="%s" target="_blank">%s</a>`,
			html.EscapeString(pdf.LocalPath), html.EscapeString(pdf.Filename))
		if pdf.OriginalURL != "" {
			fmt.Fprintf(&b, ` <small>(original: <a href="%s" target="_blank" rel="noopener">link</a>)</small>`,
				html.EscapeString(pdf.OriginalURL))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// StatisticsHTML renders the four crawl counters
func StatisticsHTML(stats analysis.Statistics) string {
	var b strings.Builder
	b.WriteString(`<div class="statistics"><h4>Processing statistics</h4>`)
	for _, row := range StatisticsRows(stats) {
		fmt.Fprintf(&b, "<p>%s: %d</p>", row.Label, row.Value)
	}
	b.WriteString("</div>")
	return b.String()
}

// StatisticRow is one labelled counter
type StatisticRow struct {
	Label string
	Value int
}

// StatisticsRows lists the counters in display order
func StatisticsRows(stats analysis.Statistics) []StatisticRow {
	return []StatisticRow{
		{Label: "Total crawled", Value: stats.TotalCrawled},
		{Label: "Processed", Value: stats.ProcessedCount},
		{Label: "Relevant links", Value: stats.RelevantCount},
		{Label: "PDFs", Value: stats.PDFCount},
	}
}

// ErrorHTML renders the error details box shown in place of the report
func ErrorHTML(message string) string {
	var b strings.Builder
	b.WriteString(`<div class="error"><h3>Error details</h3>`)
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(message))
	b.WriteString("<h4>What you can do:</h4><ul>")
	for _, tip := range ErrorTips {
		fmt.Fprintf(&b, "<li>%s</li>", tip)
	}
	b.WriteString("</ul></div>")
	return b.String()
}
