package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextStyle decorates the pieces of a fragment when it is flattened to
// terminal text. Nil hooks leave the text undecorated.
type TextStyle struct {
	Heading func(level int, text string) string
	Link    func(text, href string) string
	Strong  func(text string) string
	Bullet  string
}

// PlainText is the undecorated style used for logs and non-color output
var PlainText = TextStyle{Bullet: "• "}

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText flattens a fragment produced by this package into terminal
// text: headings and paragraphs on their own lines, list items bulleted,
// anchors shown as "text <href>".
func HTMLToText(fragment string, style TextStyle) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + fragment + "</body>"))
	if err != nil {
		return "", fmt.Errorf("failed to parse fragment: %w", err)
	}

	w := &textWriter{style: style}
	w.walk(doc.Find("body").Contents())

	out := blankLines.ReplaceAllString(w.b.String(), "\n\n")
	return strings.Trim(out, "\n"), nil
}

// MustText is HTMLToText for fragments built by this package, which always parse
func MustText(fragment string, style TextStyle) string {
	text, err := HTMLToText(fragment, style)
	if err != nil {
		return fragment
	}
	return text
}

type textWriter struct {
	b     strings.Builder
	style TextStyle
	// a <br> right after a block element would otherwise add a blank line
	blockEnd bool
}

func (w *textWriter) newline() {
	s := w.b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		w.b.WriteString("\n")
	}
}

func (w *textWriter) walk(sel *goquery.Selection) {
	sel.Each(func(_ int, s *goquery.Selection) {
		switch name := goquery.NodeName(s); name {
		case "#text":
			w.inline(s.Text())
		case "br":
			if w.blockEnd {
				w.blockEnd = false
				return
			}
			w.b.WriteString("\n")
		case "h2", "h3", "h4":
			w.newline()
			text := strings.TrimSpace(s.Text())
			if w.style.Heading != nil {
				text = w.style.Heading(int(name[1]-'0'), text)
			}
			w.b.WriteString(text)
			w.b.WriteString("\n")
			w.blockEnd = true
		case "li":
			w.newline()
			w.inline(w.style.Bullet)
			w.walk(s.Contents())
			w.newline()
			w.blockEnd = true
		case "p", "div", "ul":
			w.newline()
			w.walk(s.Contents())
			w.newline()
			w.blockEnd = true
		case "a":
			text := strings.TrimSpace(s.Text())
			href, _ := s.Attr("href")
			w.inline(w.link(text, href))
		case "strong":
			text := s.Text()
			if w.style.Strong != nil {
				text = w.style.Strong(text)
			}
			w.inline(text)
		default:
			w.walk(s.Contents())
		}
	})
}

func (w *textWriter) inline(text string) {
	w.b.WriteString(text)
	w.blockEnd = false
}

func (w *textWriter) link(text, href string) string {
	if w.style.Link != nil {
		return w.style.Link(text, href)
	}
	if href == "" || text == href {
		return text
	}
	return fmt.Sprintf("%s <%s>", text, href)
}
