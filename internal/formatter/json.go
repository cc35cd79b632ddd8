package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yildizm/CityReport/internal/analysis"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct {
	city string
}

// NewJSON creates a new JSON formatter
func NewJSON(city string) Formatter {
	return &jsonFormatter{city: city}
}

// JSONOutput is the normalized result plus provenance. Statistics are always
// present so consumers need not special-case missing counters.
type JSONOutput struct {
	City          string                  `json:"city,omitempty"`
	GeneratedAt   time.Time               `json:"generated_at"`
	Shape         analysis.Shape          `json:"shape,omitempty"`
	Summary       string                  `json:"summary"`
	Report        string                  `json:"report"`
	RelevantLinks []analysis.RelevantLink `json:"relevant_links"`
	PDFDownloads  []analysis.PDFDownload  `json:"pdf_downloads"`
	Statistics    analysis.Statistics     `json:"statistics"`
}

func (f *jsonFormatter) Format(result *analysis.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}

	output := &JSONOutput{
		City:          f.city,
		GeneratedAt:   time.Now().UTC(),
		Shape:         result.Shape,
		Summary:       result.Summary,
		Report:        result.Report,
		RelevantLinks: result.RelevantLinks,
		PDFDownloads:  result.PDFDownloads,
		Statistics:    result.Stats(),
	}
	if output.RelevantLinks == nil {
		output.RelevantLinks = []analysis.RelevantLink{}
	}
	if output.PDFDownloads == nil {
		output.PDFDownloads = []analysis.PDFDownload{}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
