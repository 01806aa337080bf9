// Package extract converts uploaded CV documents into plain text.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UnsupportedFormatError indicates a document type the extractor cannot
// convert to text.
type UnsupportedFormatError struct {
	MIMEType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s", e.MIMEType)
}

// Text converts document bytes to plain text based on MIME type. Plain
// text and JSON pass through as-is; HTML is reduced to its body text.
func Text(data []byte, mimeType string) (string, error) {
	base := mimeType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(strings.ToLower(base))

	switch {
	case base == "text/html":
		return htmlText(string(data))
	case strings.HasPrefix(base, "text/"), base == "application/json":
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{MIMEType: mimeType}
	}
}

// htmlText parses HTML and returns the cleaned body text.
func htmlText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	return cleanWhitespace(doc.Find("body").Text()), nil
}

// cleanWhitespace normalizes whitespace in text.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
