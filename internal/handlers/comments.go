// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janayne/salon/internal/models"
	"github.com/janayne/salon/internal/portfolio"
)

type commentRequest struct {
	Author string `json:"author" binding:"required,max=80"`
	Text   string `json:"text" binding:"required,max=1000"`
}

// CommentsHandler lists visitor comments
func (s *Server) CommentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"comments": s.store.Comments()})
}

// CreateCommentHandler stores a visitor comment with markup stripped
func (s *Server) CreateCommentHandler(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Preencha nome e comentário.")
		return
	}

	comment := models.Comment{
		Author: portfolio.PlainText(req.Author),
		Text:   portfolio.PlainText(req.Text),
	}
	if comment.Author == "" || comment.Text == "" {
		respondError(c, http.StatusBadRequest, "Preencha nome e comentário.")
		return
	}

	saved, err := s.store.AddComment(comment, s.now())
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}
