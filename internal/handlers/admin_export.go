// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/backup"
)

// ExportHandler downloads every stored document as one JSON file
func (s *Server) ExportHandler(c *gin.Context) {
	filename := fmt.Sprintf("salon-export-%s.json", s.now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := backup.Export(c.Writer, s.store, "admin export"); err != nil {
		s.logger.Error("export failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Falha ao exportar dados.")
		return
	}
}

// ListBackupsHandler lists the backups on disk, newest first
func (s *Server) ListBackupsHandler(c *gin.Context) {
	if s.backups == nil {
		respondError(c, http.StatusNotFound, "Backups desativados.")
		return
	}
	backups, err := s.backups.List()
	if err != nil {
		s.logger.Error("failed to list backups", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Falha ao listar backups.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"backups": backups})
}

// CreateBackupHandler takes a backup now
func (s *Server) CreateBackupHandler(c *gin.Context) {
	if s.backups == nil {
		respondError(c, http.StatusNotFound, "Backups desativados.")
		return
	}
	meta, err := s.backups.Create(c.PostForm("note"))
	if err != nil {
		s.logger.Error("backup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Falha ao criar backup.")
		return
	}
	c.JSON(http.StatusCreated, meta)
}

// RestoreBackupHandler writes a backup back into the store
func (s *Server) RestoreBackupHandler(c *gin.Context) {
	if s.backups == nil {
		respondError(c, http.StatusNotFound, "Backups desativados.")
		return
	}
	meta, err := s.backups.Restore(c.Param("id"))
	if err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Backup não encontrado.")
			return
		}
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": meta, "message": "Backup restaurado."})
}
