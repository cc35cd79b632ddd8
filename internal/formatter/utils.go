package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/CityReport/internal/analysis"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 && n > -1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 0 {
		return "-" + addCommas(fmt.Sprintf("%d", -n))
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// relevanceRatio is relevant/processed clamped to [0, 1]; ok is false when
// nothing was processed
func relevanceRatio(stats analysis.Statistics) (ratio float64, ok bool) {
	if stats.ProcessedCount <= 0 {
		return 0, false
	}
	ratio = float64(stats.RelevantCount) / float64(stats.ProcessedCount)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return ratio, true
}

func summaryText(result *analysis.Result) string {
	if s := strings.TrimSpace(result.Summary); s != "" {
		return s
	}
	return "Processing finished"
}

func title(city string) string {
	if city == "" {
		return "City Analysis Report"
	}
	return "City Analysis Report: " + city
}
