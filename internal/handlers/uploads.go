// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/imaging"
)

// UploadImageHandler turns an uploaded picture into a compact data URI. The
// caller decides where to keep it, typically in a card or the hero setting.
func (s *Server) UploadImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Nenhuma imagem enviada.")
		return
	}

	if limit := s.normalizer.Options().MaxBytes; limit > 0 && file.Size > limit {
		respondError(c, http.StatusRequestEntityTooLarge, "Imagem muito grande.")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Falha ao ler a imagem.")
		return
	}
	defer src.Close()

	result, err := s.normalizer.Normalize(c.Request.Context(), src)
	if err != nil {
		s.logger.Warn("image upload rejected", zap.String("filename", file.Filename), zap.Error(err))
		switch {
		case errors.Is(err, imaging.ErrUnsupported):
			respondError(c, http.StatusUnsupportedMediaType, "Formato de imagem não suportado.")
		case errors.Is(err, imaging.ErrTooLarge):
			respondError(c, http.StatusRequestEntityTooLarge, "Imagem muito grande.")
		case errors.Is(err, imaging.ErrDecode):
			respondError(c, http.StatusUnprocessableEntity, "Falha ao processar imagem.")
		default:
			respondError(c, http.StatusInternalServerError, "Falha ao processar imagem.")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
