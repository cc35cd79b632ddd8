// Package render projects an analysis result into view fragments: the HTML
// the page shows and the terminal text derived from it.
package render

import (
	"regexp"
	"strings"
)

// InvalidMarkdownHTML is returned for absent or empty markdown input
const InvalidMarkdownHTML = "<p>Invalid markdown data</p>"

type substitution struct {
	re   *regexp.Regexp
	repl string
}

// applied in order; the link rule runs after the line rules so a heading
// or list item can carry a link
var markdownRules = []substitution{
	{regexp.MustCompile(`(?m)^### (.+)$`), "<h4>$1</h4>"},
	{regexp.MustCompile(`(?m)^## (.+)$`), "<h3>$1</h3>"},
	{regexp.MustCompile(`(?m)^# (.+)$`), "<h2>$1</h2>"},
	{regexp.MustCompile(`(?m)^- (.+)$`), "<li>$1</li>"},
	{regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`), `<a href="$2" target="_blank" rel="noopener">$1</a>`},
}

// MarkdownToHTML converts the backend's markdown-like report into HTML.
// It is five substitutions, not a parser: list items are not wrapped in
// <ul>, nothing is escaped, and every remaining newline becomes <br>.
func MarkdownToHTML(markdown string) string {
	if markdown == "" {
		return InvalidMarkdownHTML
	}

	out := markdown
	for _, rule := range markdownRules {
		out = rule.re.ReplaceAllString(out, rule.repl)
	}
	return strings.ReplaceAll(out, "\n", "<br>")
}
