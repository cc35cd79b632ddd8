package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/CityReport/internal/analysis"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *analysis.Result) ([]byte, error)
}

// Formats lists the names accepted by New
var Formats = []string{"text", "json", "markdown", "html", "csv"}

// Options tune the terminal-oriented formatters
type Options struct {
	Color bool
	Emoji bool
	// City is shown in headers when known
	City string
}

// New returns the formatter for format ("md" is accepted for markdown)
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(opts.City), nil
	case "markdown", "md":
		return NewMarkdown(opts.City), nil
	case "html":
		return NewHTML(opts.City), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}
