// SPDX-License-Identifier: MIT
package portfolio

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/janayne/salon/internal/models"
	"github.com/janayne/salon/internal/store"
)

var strict = bluemonday.StrictPolicy()

// PlainText strips any markup from s, leaving unescaped text
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Clean strips markup from a card's text fields and replaces an unsafe image
// reference with nothing, so the store's fallback applies
func Clean(item models.PortfolioItem) models.PortfolioItem {
	item.Title = PlainText(item.Title)
	item.Description = PlainText(item.Description)
	item.Category = PlainText(item.Category)
	if item.Image != "" && SafeImageURL(item.Image) != item.Image {
		item.Image = ""
	}
	return item
}

// SafeImageURL allows embedded images, http(s) URLs and relative paths. Any
// other scheme is replaced with the fallback card image.
func SafeImageURL(src string) string {
	s := strings.TrimSpace(src)
	lower := strings.ToLower(s)
	switch {
	case s == "":
		return store.FallbackCardImage
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return s
	case strings.Contains(lower, ":") && !strings.HasPrefix(lower, "./") && !strings.HasPrefix(lower, "/"):
		return store.FallbackCardImage
	default:
		return s
	}
}
