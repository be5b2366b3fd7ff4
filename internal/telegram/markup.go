package telegram

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips the HTML markup from a formatted message, leaving the text a
// reader would see in the chat. Entities such as &lt; are decoded.
func PlainText(message string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(message))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	return strings.TrimSpace(doc.Text()), nil
}
