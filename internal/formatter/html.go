package formatter

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/render"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; line-height: 1.5; }
.status { padding: .75em 1em; border-radius: 4px; background: #e8f5e9; color: #1b5e20; }
.statistics { background: #f5f5f5; padding: .5em 1em; border-radius: 4px; }
.downloaded { color: #2e7d32; font-size: .85em; }
section { margin-top: 1.5em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="status">{{.Status}}</p>
<section id="report">{{.Report}}</section>
<section id="links">{{.Links}}</section>
<section id="pdfs">{{.PDFs}}</section>
<footer><small>Generated {{.Generated}} by CityReport</small></footer>
</body>
</html>
`))

type htmlPage struct {
	Title     string
	Status    string
	Report    template.HTML
	Links     template.HTML
	PDFs      template.HTML
	Generated string
}

// htmlFormatter wraps the view fragments in a standalone page
type htmlFormatter struct {
	city string
}

// NewHTML creates a new HTML page formatter
func NewHTML(city string) Formatter {
	return &htmlFormatter{city: city}
}

func (f *htmlFormatter) Format(result *analysis.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}

	// Fragments escape untrusted values themselves; the report markdown is
	// passed through as authored by the backend.
	page := htmlPage{
		Title:     title(f.city),
		Status:    "Analysis complete! " + summaryText(result),
		Report:    template.HTML(render.ReportHTML(result)),
		Links:     template.HTML(render.LinksHTML(result.RelevantLinks)),
		PDFs:      template.HTML(render.PDFsHTML(result.PDFDownloads)),
		Generated: time.Now().Format("2006-01-02 15:04:05"),
	}

	var b bytes.Buffer
	if err := pageTemplate.Execute(&b, page); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	return b.Bytes(), nil
}
