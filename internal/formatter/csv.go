package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/CityReport/internal/analysis"
)

// csvFormatter lists relevant links and downloaded PDFs as CSV rows
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *analysis.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no result to format")
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"Kind", "Type", "URL", "Downloaded", "Filename", "Local Path"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, link := range result.RelevantLinks {
		record := []string{"link", link.LinkType(), link.URL, strconv.FormatBool(link.Downloaded), "", ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, pdf := range result.PDFDownloads {
		record := []string{"pdf", "PDF", pdf.OriginalURL, "true", pdf.Filename, pdf.LocalPath}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
