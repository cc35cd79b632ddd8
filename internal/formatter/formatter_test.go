package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/yildizm/CityReport/internal/analysis"
	"github.com/yildizm/CityReport/internal/emoji"
)

func sampleResult() *analysis.Result {
	return &analysis.Result{
		Summary: "2 relevant links",
		Report:  "# Zoning\n- Residential | mixed\n\nSee [plan](https://city.example.jp/plan.pdf)",
		RelevantLinks: []analysis.RelevantLink{
			{Type: "PDF", URL: "https://city.example.jp/plan.pdf", Downloaded: true},
			{URL: "https://city.example.jp/zoning"},
		},
		PDFDownloads: []analysis.PDFDownload{
			{Filename: "plan.pdf", LocalPath: "/files/plan.pdf", OriginalURL: "https://city.example.jp/plan.pdf"},
		},
		Statistics: &analysis.Statistics{TotalCrawled: 1250, ProcessedCount: 40, RelevantCount: 10, PDFCount: 1},
		Shape:      analysis.ShapeRich,
	}
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats, "md", "", "JSON") {
		if _, err := New(format, Options{}); err != nil {
			t.Errorf("New(%q) failed: %v", format, err)
		}
	}
	if _, err := New("yaml", Options{}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormattersRejectNil(t *testing.T) {
	for _, format := range Formats {
		f, _ := New(format, Options{})
		if _, err := f.Format(nil); err == nil {
			t.Errorf("%s formatter: expected error for nil result", format)
		}
	}
}

func TestTerminalFormatter(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	out, err := NewTerminal(Options{City: "Sapporo"}).Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	expected := []string{
		"City Analysis Report: Sapporo",
		"[SUM] Summary\n2 relevant links",
		"Zoning\n• Residential | mixed",
		"See plan <https://city.example.jp/plan.pdf>",
		"Processing statistics",
		"Total crawled",
		"1,250",
		"Relevance",
		"Relevant links (2)",
		"UNKNOWN",
		"[DL]",
		"Downloaded PDF files (1)",
		"/files/plan.pdf",
	}
	for _, want := range expected {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "<h2>") || strings.Contains(text, "<br>") {
		t.Errorf("Expected no HTML in terminal output\n%s", text)
	}
}

func TestTerminalFormatterEmptyResult(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	out, err := NewTerminal(Options{}).Format(&analysis.Result{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	text := string(out)

	for _, want := range []string{"Processing finished", "No report data", "No relevant links found", "No PDF files could be downloaded"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "Processing statistics") {
		t.Error("Expected no statistics section without statistics")
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSON("Osaka").Format(&analysis.Result{Summary: "done"})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded["city"] != "Osaka" || decoded["summary"] != "done" {
		t.Errorf("Unexpected output %v", decoded)
	}
	if links, ok := decoded["relevant_links"].([]interface{}); !ok || len(links) != 0 {
		t.Errorf("Expected empty links array, got %v", decoded["relevant_links"])
	}
	stats, ok := decoded["statistics"].(map[string]interface{})
	if !ok || stats["total_crawled"] != float64(0) {
		t.Errorf("Expected zeroed statistics, got %v", decoded["statistics"])
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdown("Kobe").Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	md := string(out)

	expected := []string{
		"# City Analysis Report: Kobe",
		"## Report\n\n### Zoning",
		"| Total crawled | 1,250 |",
		"| Relevance | 25% |",
		"| PDF | <https://city.example.jp/plan.pdf> | yes |",
		"| UNKNOWN | <https://city.example.jp/zoning> | no |",
		"| [plan.pdf](/files/plan.pdf) | `/files/plan.pdf` | <https://city.example.jp/plan.pdf> |",
	}
	for _, want := range expected {
		if !strings.Contains(md, want) {
			t.Errorf("Expected output to contain %q\n%s", want, md)
		}
	}
	if !strings.Contains(md, "- Residential | mixed") {
		t.Errorf("Expected report body passed through unchanged\n%s", md)
	}
}

func TestDemoteHeadings(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"# A", "### A"},
		{"### B", "##### B"},
		{"##### C", "###### C"},
		{"#nospace", "#nospace"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := demoteHeadings(tt.in); got != tt.expected {
			t.Errorf("demoteHeadings(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestHTMLFormatter(t *testing.T) {
	result := sampleResult()
	result.Summary = "<b>bold</b>"

	out, err := NewHTML("Nara").Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("Invalid HTML: %v", err)
	}

	if got := doc.Find("title").Text(); got != "City Analysis Report: Nara" {
		t.Errorf("Unexpected title %q", got)
	}
	if got := doc.Find(".status").Text(); got != "Analysis complete! <b>bold</b>" {
		t.Errorf("Expected escaped summary, got %q", got)
	}
	if doc.Find("#report h2").Text() != "Zoning" {
		t.Error("Expected rendered report heading")
	}
	if doc.Find("#report .statistics").Length() != 1 {
		t.Error("Expected statistics block in report section")
	}
	if doc.Find("#links li").Length() != 2 {
		t.Errorf("Expected 2 links, got %d", doc.Find("#links li").Length())
	}
	if href, _ := doc.Find("#pdfs a").First().Attr("href"); href != "/files/plan.pdf" {
		t.Errorf("Unexpected PDF href %q", href)
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := NewCSV().Format(sampleResult())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(records))
	}
	if records[2][1] != "UNKNOWN" || records[2][3] != "false" {
		t.Errorf("Unexpected link row %v", records[2])
	}
	if records[3][0] != "pdf" || records[3][4] != "plan.pdf" {
		t.Errorf("Unexpected PDF row %v", records[3])
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -2500: "-2,500"}
	for n, expected := range tests {
		if got := formatNumber(n); got != expected {
			t.Errorf("formatNumber(%d) = %q, expected %q", n, got, expected)
		}
	}
}
