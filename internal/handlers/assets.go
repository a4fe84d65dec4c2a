// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServeAssetHandler serves the bundled card and hero photos from the assets
// directory. Only plain files directly under it are reachable.
func (s *Server) ServeAssetHandler(c *gin.Context) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")
	if s.assetsDir == "" || filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	filePath := filepath.Join(s.assetsDir, filename)
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
