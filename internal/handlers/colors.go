// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janayne/salon/internal/colors"
)

type hexRequest struct {
	Hex string `json:"hex" binding:"required"`
}

type colorResponse struct {
	State   colors.State   `json:"state"`
	Preview colors.Preview `json:"preview"`
}

func newColorResponse(state colors.State) colorResponse {
	state = state.Clamped()
	return colorResponse{State: state, Preview: state.Preview()}
}

// ColorHistoryHandler lists recent colors, most recent first
func (s *Server) ColorHistoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": s.store.ColorHistory()})
}

// PushColorHistoryHandler records a color picked in the admin
func (s *Server) PushColorHistoryHandler(c *gin.Context) {
	var req hexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Cor inválida.")
		return
	}
	hex, err := colors.Normalize(req.Hex)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Cor inválida.")
		return
	}

	history, err := s.store.PushColorHistory(hex)
	if err != nil {
		s.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// DecodeColorHandler loads a hex color into picker coordinates. Lightness
// and opacity always come back as 50 and 1.
func (s *Server) DecodeColorHandler(c *gin.Context) {
	var req hexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Cor inválida.")
		return
	}
	state, err := colors.FromHex(req.Hex)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Cor inválida.")
		return
	}
	c.JSON(http.StatusOK, newColorResponse(state))
}

// EncodeColorHandler renders picker coordinates as colors
func (s *Server) EncodeColorHandler(c *gin.Context) {
	state := colors.NewState()
	if err := c.ShouldBindJSON(&state); err != nil {
		respondError(c, http.StatusBadRequest, "Estado inválido.")
		return
	}
	c.JSON(http.StatusOK, newColorResponse(state))
}

type wheelRequest struct {
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
	Size  float64      `json:"size"`
	State colors.State `json:"state"`
}

// WheelHandler moves the picker to a pointer position on the wheel, keeping
// the lightness and opacity sliders
func (s *Server) WheelHandler(c *gin.Context) {
	req := wheelRequest{State: colors.NewState()}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Posição inválida.")
		return
	}

	wheel := colors.DefaultWheel
	if req.Size > 0 {
		wheel.Size = req.Size
	}
	c.JSON(http.StatusOK, newColorResponse(wheel.PickState(req.State, req.X, req.Y)))
}
