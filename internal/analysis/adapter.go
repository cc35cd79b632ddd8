package analysis

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
)

// legacySourcesHeading introduces sources_report when a legacy payload is
// folded into a single report
const legacySourcesHeading = "## Data sources"

var richKeys = []string{"summary", "report", "relevant_links", "pdf_downloads", "statistics"}

// Normalize turns a 2xx response body into a Result. Both the rich payload
// and the legacy {zone_report, sources_report} payload are accepted. Values
// of the wrong JSON type are treated as absent rather than failing the
// whole response; only a body that is not a JSON object is rejected.
func Normalize(body []byte) (*Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, NewMalformedResponseError(errors.New("body is not valid JSON"))
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, NewMalformedResponseError(fmt.Errorf("expected a JSON object, got %s", describe(doc)))
	}

	if isLegacy(doc) {
		return normalizeLegacy(doc), nil
	}
	return normalizeRich(doc), nil
}

// DetectShape reports which layout a JSON object uses
func DetectShape(body []byte) Shape {
	if isLegacy(gjson.ParseBytes(body)) {
		return ShapeLegacy
	}
	return ShapeRich
}

func isLegacy(doc gjson.Result) bool {
	for _, key := range richKeys {
		if doc.Get(key).Exists() {
			return false
		}
	}
	return doc.Get("zone_report").Exists() || doc.Get("sources_report").Exists()
}

func normalizeRich(doc gjson.Result) *Result {
	result := &Result{
		Summary: stringField(doc, "summary"),
		Report:  stringField(doc, "report"),
		Shape:   ShapeRich,
	}

	arrayItems(doc, "relevant_links", func(item gjson.Result) {
		if item.IsObject() {
			result.RelevantLinks = append(result.RelevantLinks, RelevantLink{
				Type:       stringField(item, "type"),
				URL:        stringField(item, "url"),
				Downloaded: item.Get("downloaded").Bool(),
			})
		}
	})

	arrayItems(doc, "pdf_downloads", func(item gjson.Result) {
		if item.IsObject() {
			result.PDFDownloads = append(result.PDFDownloads, PDFDownload{
				Filename:    stringField(item, "filename"),
				LocalPath:   stringField(item, "local_path"),
				OriginalURL: stringField(item, "original_url"),
			})
		}
	})

	if stats := doc.Get("statistics"); stats.IsObject() {
		result.Statistics = &Statistics{
			TotalCrawled:   int(stats.Get("total_crawled").Int()),
			ProcessedCount: int(stats.Get("processed_count").Int()),
			RelevantCount:  int(stats.Get("relevant_count").Int()),
			PDFCount:       int(stats.Get("pdf_count").Int()),
		}
	}

	return result
}

func normalizeLegacy(doc gjson.Result) *Result {
	zone := stringField(doc, "zone_report")
	sources := stringField(doc, "sources_report")

	var report strings.Builder
	report.WriteString(zone)
	if sources != "" {
		if zone != "" {
			report.WriteString("\n\n")
		}
		report.WriteString(legacySourcesHeading + "\n")
		report.WriteString(sources)
	}

	result := &Result{
		Report: report.String(),
		Shape:  ShapeLegacy,
	}

	arrayItems(doc, "pdf_download_urls", func(item gjson.Result) {
		if item.Type == gjson.String && item.String() != "" {
			result.PDFDownloads = append(result.PDFDownloads, PDFDownload{
				Filename:  path.Base(item.String()),
				LocalPath: item.String(),
			})
		}
	})

	return result
}

// arrayItems visits the elements of doc[key] when it is an array
func arrayItems(doc gjson.Result, key string, visit func(item gjson.Result)) {
	v := doc.Get(key)
	if !v.IsArray() {
		return
	}
	for _, item := range v.Array() {
		visit(item)
	}
}

func stringField(doc gjson.Result, key string) string {
	v := doc.Get(key)
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}

func describe(doc gjson.Result) string {
	switch {
	case doc.IsArray():
		return "array"
	case doc.Type == gjson.Null:
		return "null"
	case doc.Type == gjson.String:
		return "string"
	case doc.Type == gjson.Number:
		return "number"
	case doc.Type == gjson.True, doc.Type == gjson.False:
		return "boolean"
	default:
		return doc.Type.String()
	}
}

// errorDetail extracts the server's explanation from an error body.
// FastAPI sends {"detail": "..."} for raised errors and a list of
// {"msg": "..."} objects for request validation failures.
func errorDetail(body []byte) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String && detail.String() != "":
		return detail.String(), true
	case detail.IsArray():
		var msgs []string
		detail.ForEach(func(_, item gjson.Result) bool {
			if msg := stringField(item, "msg"); msg != "" {
				msgs = append(msgs, msg)
			}
			return true
		})
		if len(msgs) > 0 {
			return strings.Join(msgs, "; "), true
		}
	}
	return "", false
}
