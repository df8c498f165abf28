package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const maxSummaryLength = 500

// ParsedPage holds the article fields extracted from an HTML page.
type ParsedPage struct {
	Title   string
	Summary *string
}

// ParsePage extracts the title and a short summary from raw HTML content.
func ParsePage(content []byte) (*ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	parsed := &ParsedPage{}

	// Prefer og:title over the document title
	if value, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		parsed.Title = strings.TrimSpace(value)
	}
	if parsed.Title == "" {
		parsed.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	summary := extractSummary(doc)
	if summary != "" {
		parsed.Summary = &summary
	}

	return parsed, nil
}

func extractSummary(doc *goquery.Document) string {
	for _, selector := range []string{"meta[name='description']", "meta[property='og:description']"} {
		if value, exists := doc.Find(selector).Attr("content"); exists {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return truncate(trimmed, maxSummaryLength)
			}
		}
	}

	// Fall back to the first paragraph of the article body
	var fragment string
	if p := doc.Find("article p").First(); p.Length() > 0 {
		fragment, _ = p.Html()
	} else if p := doc.Find("body p").First(); p.Length() > 0 {
		fragment, _ = p.Html()
	}

	if fragment == "" {
		return ""
	}

	return truncate(extractText(fragment), maxSummaryLength)
}

// extractText strips tags, scripts, styles and comments from an HTML fragment
// and collapses whitespace.
func extractText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.CommentNode {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
