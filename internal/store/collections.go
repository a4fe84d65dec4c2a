// SPDX-License-Identifier: MIT
package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/janayne/salon/internal/colors"
	"github.com/janayne/salon/internal/models"
)

// ErrNotFound is returned when an edit targets a card that no longer exists
var ErrNotFound = errors.New("item not found")

// FallbackCardImage is used for new cards saved without an image
const FallbackCardImage = "./assets/foto1.jpg"

// DefaultPortfolio is written on first start so the public grid is never empty
func DefaultPortfolio() []models.PortfolioItem {
	return []models.PortfolioItem{
		{ID: 1, Image: "assets/foto1.jpg", Title: "Design Exclusivo", Description: "Arte e sofisticação.", Category: "Nail Art"},
		{ID: 2, Image: "assets/foto2.jpg", Title: "Nail Art", Description: "Acabamento premium.", Category: "Nail Art"},
		{ID: 3, Image: "assets/foto3.jpg", Title: "Alongamento", Description: "Naturalidade e resistência.", Category: "Alongamento"},
		{ID: 4, Image: "assets/foto4.jpg", Title: "Esmaltação", Description: "Cores vibrantes.", Category: "Nail Art"},
		{ID: 5, Image: "assets/foto5.jpg", Title: "Blindagem", Description: "Proteção e brilho.", Category: "Blindagem"},
		{ID: 6, Image: "assets/foto6.jpg", Title: "Spa dos Pés", Description: "Cuidado completo.", Category: "Pés"},
	}
}

// Seed writes the default portfolio if the portfolio key was never written.
// It reports whether anything was written.
func (s *Store) Seed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Has(KeyPortfolio) {
		return false, nil
	}
	if err := s.set(KeyPortfolio, DefaultPortfolio()); err != nil {
		return false, fmt.Errorf("failed to seed portfolio: %w", err)
	}
	s.logger.Info("seeded default portfolio", zap.Int("items", len(DefaultPortfolio())))
	return true, nil
}

// Portfolio returns every card in stored order
func (s *Store) Portfolio() []models.PortfolioItem {
	return List[models.PortfolioItem](s, KeyPortfolio)
}

// SavePortfolio replaces the whole card collection
func (s *Store) SavePortfolio(items []models.PortfolioItem) error {
	return s.Set(KeyPortfolio, items)
}

// AddPortfolioItem appends a card
func (s *Store) AddPortfolioItem(item models.PortfolioItem) error {
	return s.Add(KeyPortfolio, item)
}

// RemovePortfolioItem deletes every card whose id loosely matches id
func (s *Store) RemovePortfolioItem(id any) error {
	return s.Remove(KeyPortfolio, id)
}

// FindPortfolioItem looks a card up by id
func (s *Store) FindPortfolioItem(id int64) (models.PortfolioItem, bool) {
	for _, item := range s.Portfolio() {
		if item.ID == id {
			return item, true
		}
	}
	return models.PortfolioItem{}, false
}

// PutPortfolioItem saves the admin card form. A non-zero ID edits that card
// in place, keeping its position and, when no image is given, its image.
// A zero ID creates a card stamped with now in milliseconds and puts it first.
func (s *Store) PutPortfolioItem(item models.PortfolioItem, now time.Time) (models.PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.Portfolio()

	if item.ID != 0 {
		for i, existing := range items {
			if existing.ID != item.ID {
				continue
			}
			if item.Image == "" {
				item.Image = existing.Image
			}
			items[i] = item
			return item, s.set(KeyPortfolio, items)
		}
		return models.PortfolioItem{}, fmt.Errorf("%w: card %d", ErrNotFound, item.ID)
	}

	item.ID = freeID(items, now.UnixMilli(), func(p models.PortfolioItem) int64 { return p.ID })
	if item.Image == "" {
		item.Image = FallbackCardImage
	}
	items = append([]models.PortfolioItem{item}, items...)
	return item, s.set(KeyPortfolio, items)
}

// freeID returns the first id at or after want that no item uses
func freeID[T any](items []T, want int64, idOf func(T) int64) int64 {
	taken := make(map[int64]bool, len(items))
	for _, item := range items {
		taken[idOf(item)] = true
	}
	for taken[want] {
		want++
	}
	return want
}

// Settings returns the settings record, or an empty one when never saved
func (s *Store) Settings() models.Settings {
	settings, _ := Record[models.Settings](s, KeySettings)
	return settings
}

// SaveSettings replaces the settings record. An empty hero image keeps the
// one already stored.
func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings.HeroImage == "" {
		settings.HeroImage = s.Settings().HeroImage
	}
	return s.set(KeySettings, settings)
}

// ColorHistory returns the recent colors, most recent first. A key that was
// never written yields the default swatches.
func (s *Store) ColorHistory() []string {
	if !s.Has(KeyColorHistory) {
		return colors.DefaultHistory()
	}
	return List[string](s, KeyColorHistory)
}

// PushColorHistory records hex as the most recent color
func (s *Store) PushColorHistory(hex string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history, added := colors.PushHistory(s.ColorHistory(), hex)
	if !added {
		return history, nil
	}
	if err := s.set(KeyColorHistory, history); err != nil {
		return nil, err
	}
	return history, nil
}

// Comments returns visitor comments in stored order
func (s *Store) Comments() []models.Comment {
	return List[models.Comment](s, KeyComments)
}

// AddComment stamps and appends a visitor comment. A zero ID becomes the
// creation time in milliseconds, bumped past any id already in use.
func (s *Store) AddComment(comment models.Comment, now time.Time) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.CreatedAt = now.UnixMilli()
	if comment.ID == 0 {
		comment.ID = freeID(s.Comments(), comment.CreatedAt, func(c models.Comment) int64 { return c.ID })
	}
	if err := s.add(KeyComments, comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// RemoveComment deletes a comment by id
func (s *Store) RemoveComment(id any) error {
	return s.Remove(KeyComments, id)
}
