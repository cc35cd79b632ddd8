package analysis

import "strings"

// Shape identifies which payload layout the backend answered with
type Shape string

const (
	// ShapeRich is the current payload: summary, report, links, PDFs, statistics
	ShapeRich Shape = "rich"

	// ShapeLegacy is the older {zone_report, sources_report} payload
	ShapeLegacy Shape = "legacy"
)

// Request is the body of one analysis call
type Request struct {
	City string `json:"city"`
}

// NewRequest trims the city name and rejects empty input
func NewRequest(city string) (*Request, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, NewValidationError("city", "city name is required")
	}
	return &Request{City: city}, nil
}

// Result is the normalized analysis payload. Every field is optional.
type Result struct {
	Summary       string         `json:"summary,omitempty"`
	Report        string         `json:"report,omitempty"`
	RelevantLinks []RelevantLink `json:"relevant_links,omitempty"`
	PDFDownloads  []PDFDownload  `json:"pdf_downloads,omitempty"`
	Statistics    *Statistics    `json:"statistics,omitempty"`

	// Shape is not part of the wire format
	Shape Shape `json:"-"`
}

// RelevantLink is a URL the backend judged pertinent to the city
type RelevantLink struct {
	Type       string `json:"type"`
	URL        string `json:"url"`
	Downloaded bool   `json:"downloaded"`
}

// PDFDownload references a document the backend fetched
type PDFDownload struct {
	Filename    string `json:"filename"`
	LocalPath   string `json:"local_path"`
	OriginalURL string `json:"original_url"`
}

// Statistics holds the crawl counters. Absent counters decode as 0.
type Statistics struct {
	TotalCrawled   int `json:"total_crawled"`
	ProcessedCount int `json:"processed_count"`
	RelevantCount  int `json:"relevant_count"`
	PDFCount       int `json:"pdf_count"`
}

// Stats returns the statistics, or zero counters when the payload had none
func (r *Result) Stats() Statistics {
	if r == nil || r.Statistics == nil {
		return Statistics{}
	}
	return *r.Statistics
}

// LinkType returns the link's type tag, or UNKNOWN
func (l RelevantLink) LinkType() string {
	if l.Type == "" {
		return "UNKNOWN"
	}
	return l.Type
}
