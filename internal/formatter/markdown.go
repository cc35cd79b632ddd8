package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/render"
)

// markdownFormatter re-emits the report with link, PDF and statistics tables
type markdownFormatter struct {
	city string
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(city string) Formatter {
	return &markdownFormatter{city: city}
}

func (f *markdownFormatter) Format(result *analysis.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title(f.city))
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b, result)

	b.WriteString("## Summary\n\n")
	b.WriteString(summaryText(result) + "\n\n")

	b.WriteString("## Report\n\n")
	if result.Report != "" {
		b.WriteString(demoteHeadings(result.Report) + "\n\n")
	} else {
		b.WriteString("_No report data_\n\n")
	}

	if result.Statistics != nil {
		f.writeStatistics(&b, *result.Statistics)
	}
	f.writeLinks(&b, result.RelevantLinks)
	f.writePDFs(&b, result.PDFDownloads)

	b.WriteString("---\n")
	b.WriteString("*Report generated by CityReport*\n")

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, result *analysis.Result) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")
	b.WriteString("- [Report](#report)\n")
	if result.Statistics != nil {
		b.WriteString("- [Processing Statistics](#processing-statistics)\n")
	}
	b.WriteString("- [Relevant Links](#relevant-links)\n")
	b.WriteString("- [Downloaded PDFs](#downloaded-pdfs)\n\n")
}

func (f *markdownFormatter) writeStatistics(b *strings.Builder, stats analysis.Statistics) {
	b.WriteString("## Processing Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	for _, row := range render.StatisticsRows(stats) {
		fmt.Fprintf(b, "| %s | %s |\n", row.Label, formatNumber(row.Value))
	}
	if ratio, ok := relevanceRatio(stats); ok {
		fmt.Fprintf(b, "| Relevance | %.0f%% |\n", ratio*100)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeLinks(b *strings.Builder, links []analysis.RelevantLink) {
	b.WriteString("## Relevant Links\n\n")
	if len(links) == 0 {
		b.WriteString("No relevant links found. The AI filter may have been too strict. Try another city.\n\n")
		return
	}

	b.WriteString("| Type | URL | Downloaded |\n")
	b.WriteString("|------|-----|------------|\n")
	for _, link := range links {
		downloaded := "no"
		if link.Downloaded {
			downloaded = "yes"
		}
		fmt.Fprintf(b, "| %s | <%s> | %s |\n", escapeCell(link.LinkType()), escapeCell(link.URL), downloaded)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writePDFs(b *strings.Builder, pdfs []analysis.PDFDownload) {
	b.WriteString("## Downloaded PDFs\n\n")
	if len(pdfs) == 0 {
		b.WriteString("No PDF files could be downloaded.\n\n")
		return
	}

	b.WriteString("| File | Local path | Original URL |\n")
	b.WriteString("|------|------------|--------------|\n")
	for _, pdf := range pdfs {
		original := ""
		if pdf.OriginalURL != "" {
			original = "<" + escapeCell(pdf.OriginalURL) + ">"
		}
		fmt.Fprintf(b, "| [%s](%s) | `%s` | %s |\n",
			escapeCell(pdf.Filename), escapeCell(pdf.LocalPath), escapeCell(pdf.LocalPath), original)
	}
	b.WriteString("\n")
}

// demoteHeadings shifts report headings one level down so they nest under
// the "## Report" section
func demoteHeadings(report string) string {
	lines := strings.Split(report, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			level := len(line) - len(strings.TrimLeft(line, "#"))
			if level < 6 && strings.HasPrefix(line[level:], " ") {
				lines[i] = "##" + line
				if level+2 > 6 {
					lines[i] = "######" + line[level:]
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
