// SPDX-License-Identifier: MIT

// Package portfolio renders portfolio cards into the grid markup and filters
// them by category.
package portfolio

import (
	"fmt"
	"html"
	"strings"

	"github.com/janayne/salon/internal/models"
	"github.com/janayne/salon/internal/theme"
)

// EmptyMessage is shown to visitors when no card matches the filter
const EmptyMessage = "Nenhum trabalho encontrado."

// RevealClass marks cards for the fade-in observer on the page
const RevealClass = "reveal"

// IsAll reports whether filter is the show-everything sentinel
func IsAll(filter string) bool {
	f := strings.TrimSpace(filter)
	return f == "" || strings.EqualFold(f, "all") || strings.EqualFold(f, "todos")
}

// Filter returns the cards a view shows. The admin view ignores the filter.
func Filter(items []models.PortfolioItem, admin bool, filter string) []models.PortfolioItem {
	if admin || IsAll(filter) {
		return items
	}
	matched := make([]models.PortfolioItem, 0, len(items))
	for _, item := range items {
		if item.Category == filter {
			matched = append(matched, item)
		}
	}
	return matched
}

// Categories lists the distinct non-empty categories in first-seen order
func Categories(items []models.PortfolioItem) []string {
	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range items {
		c := strings.TrimSpace(item.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	return categories
}

// Renderer builds the grid container's content
type Renderer struct {
	settings theme.SettingsSource
}

// NewRenderer creates a renderer. settings supplies the WhatsApp number used
// by each card's booking link and may be nil.
func NewRenderer(settings theme.SettingsSource) *Renderer {
	return &Renderer{settings: settings}
}

// Render returns the complete inner HTML of the grid for items. The result
// replaces whatever the container held before.
func (r *Renderer) Render(items []models.PortfolioItem, admin bool, filter string) string {
	visible := Filter(items, admin, filter)
	if len(visible) == 0 && !admin {
		return `<p class="portfolio-empty">` + EmptyMessage + `</p>`
	}

	contact := ""
	if r.settings != nil {
		contact = r.settings.Settings().WhatsappLink
	}

	var b strings.Builder
	for i, item := range visible {
		b.WriteString(renderCard(item, i, admin, contact))
	}
	return b.String()
}

func renderCard(item models.PortfolioItem, index int, admin bool, contact string) string {
	title := html.EscapeString(item.Title)
	classes := "card-item portfolio-card " + RevealClass
	extra := ""
	footer := ""

	if admin {
		footer = fmt.Sprintf(`
  <div class="card-actions">
    <button type="button" class="btn-edit card-btn" data-id="%d">Editar</button>
    <button type="button" class="btn-delete" data-id="%d">Excluir Item</button>
  </div>`, item.ID, item.ID)
	} else {
		classes += " cursor-pointer"
		extra = fmt.Sprintf(` data-index="%d" data-cta="%s"`, index, html.EscapeString(theme.CardLink(contact, item.Title)))
	}

	return fmt.Sprintf(`<div class="%s" data-id="%d"%s>
  <div class="card-media">
    <img src="%s" alt="%s" loading="lazy">
    <span class="card-category">%s</span>
  </div>
  <div class="card-body">
    <h4 class="card-title">%s</h4>
    <p class="card-description">%s</p>
  </div>%s
</div>
`, classes, item.ID, extra,
		html.EscapeString(SafeImageURL(item.Image)), title,
		html.EscapeString(item.Category),
		title,
		html.EscapeString(item.Description),
		footer)
}
