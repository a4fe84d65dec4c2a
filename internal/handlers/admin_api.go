// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/models"
	"github.com/janayne/salon/internal/portfolio"
	"github.com/janayne/salon/internal/theme"
)

// GetSettingsHandler returns the stored settings with each slot's default
func (s *Server) GetSettingsHandler(c *gin.Context) {
	defaults := make(map[string]string)
	for _, slot := range theme.Slots() {
		defaults[slot.Setting] = slot.Default
	}
	c.JSON(http.StatusOK, gin.H{
		"settings": s.store.Settings(),
		"defaults": defaults,
	})
}

// SaveSettingsHandler replaces the settings record. Colors are normalized
// to #RRGGBB or #RRGGBBAA before anything is written.
func (s *Server) SaveSettingsHandler(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondError(c, http.StatusBadRequest, "Dados inválidos.")
		return
	}

	prepared, err := s.validator.Prepare(settings)
	if err != nil {
		if errors.Is(err, theme.ErrInvalidSettings) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "Erro ao validar dados.")
		return
	}

	if err := s.store.SaveSettings(prepared); err != nil {
		s.respondStoreError(c, err)
		return
	}

	saved := s.store.Settings()
	s.logger.Info("settings saved", zap.Bool("hero_image", saved.HeroImage != ""))
	c.JSON(http.StatusOK, gin.H{
		"settings":  saved,
		"variables": theme.Variables(saved),
		"message":   "Aparência atualizada com sucesso!",
	})
}

type cardRequest struct {
	Image       string `json:"image" binding:"max=8388608"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Category    string `json:"category" binding:"max=100"`
}

func (r cardRequest) item(id int64) models.PortfolioItem {
	return portfolio.Clean(models.PortfolioItem{
		ID:          id,
		Image:       r.Image,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
	})
}

// CreateCardHandler adds a card at the top of the portfolio
func (s *Server) CreateCardHandler(c *gin.Context) {
	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Informe ao menos o título.")
		return
	}

	saved, err := s.store.PutPortfolioItem(req.item(0), s.now())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateCardHandler replaces a card in place, keeping its id
func (s *Server) UpdateCardHandler(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var req cardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Informe ao menos o título.")
		return
	}

	saved, err := s.store.PutPortfolioItem(req.item(id), s.now())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteCardHandler removes a card. The id comes from a DOM attribute, so
// "42" and 42 both match; an unknown id is not an error.
func (s *Server) DeleteCardHandler(c *gin.Context) {
	if err := s.store.RemovePortfolioItem(c.Param("id")); err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
