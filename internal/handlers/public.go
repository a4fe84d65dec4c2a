// SPDX-License-Identifier: MIT
package handlers

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/models"
	"github.com/janayne/salon/internal/portfolio"
	"github.com/janayne/salon/internal/theme"
)

// HomeHandler renders the themed visitor page
func (s *Server) HomeHandler(c *gin.Context) {
	filter := c.Query("category")
	items := s.store.Portfolio()

	grid := s.renderer.Render(items, false, filter)
	filters := renderFilters(portfolio.Categories(items), filter)
	name := html.EscapeString(defaultSalonName)
	number := theme.DefaultWhatsAppNumber

	page := fmt.Sprintf(publicPage, name, name, number, name, filters, grid, number, name)

	doc, err := theme.ParseDocument(strings.NewReader(page))
	if err != nil {
		s.logger.Error("failed to parse page", zap.Error(err))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
		return
	}
	s.applier.ApplyTheme(doc)

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", out.Bytes())
}

// ThemeCSSHandler serves the stylesheet generated from the settings
func (s *Server) ThemeCSSHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(s.applier.CSS()))
}

// PortfolioHandler lists the cards a visitor sees for a category
func (s *Server) PortfolioHandler(c *gin.Context) {
	filter := c.Query("category")
	items := portfolio.Filter(s.store.Portfolio(), false, filter)

	settings := s.store.Settings()
	type card struct {
		models.PortfolioItem
		BookingLink string `json:"bookingLink"`
	}
	cards := make([]card, 0, len(items))
	for _, item := range items {
		cards = append(cards, card{PortfolioItem: item, BookingLink: theme.CardLink(settings.WhatsappLink, item.Title)})
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cards,
		"html":  s.renderer.Render(items, false, filter),
	})
}

// CategoriesHandler lists the distinct card categories
func (s *Server) CategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": portfolio.Categories(s.store.Portfolio())})
}

func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
