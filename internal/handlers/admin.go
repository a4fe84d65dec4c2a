// SPDX-License-Identifier: MIT
package handlers

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/auth"
	"github.com/janayne/salon/internal/middleware"
	"github.com/janayne/salon/internal/portfolio"
	"github.com/janayne/salon/internal/theme"
)

// LoginFormHandler renders the admin password form
func (s *Server) LoginFormHandler(c *gin.Context) {
	s.renderLogin(c, http.StatusOK, "")
}

func (s *Server) renderLogin(c *gin.Context, status int, message string) {
	errorHTML := ""
	if message != "" {
		errorHTML = `<p class="error">` + html.EscapeString(message) + `</p>`
	}
	page := fmt.Sprintf(loginPage, middleware.CSRFTokenHTML(c), errorHTML)
	c.Data(status, "text/html; charset=utf-8", []byte(page))
}

// LoginHandler checks the admin password and starts a browser session.
// This only gates the admin screens; it is not an access-control boundary
// for the data itself.
func (s *Server) LoginHandler(c *gin.Context) {
	password := c.PostForm("password")

	if !auth.CheckPassword(password, s.passwordHash) {
		s.logger.Warn("admin login failed", zap.String("client_ip", c.ClientIP()))
		s.renderLogin(c, http.StatusUnauthorized, "Senha incorreta.")
		return
	}

	token, err := s.sessions.Issue()
	if err != nil {
		s.logger.Error("failed to issue session", zap.Error(err))
		s.renderLogin(c, http.StatusInternalServerError, "Não foi possível entrar agora.")
		return
	}

	auth.SetSessionCookie(c, token, s.secure)
	s.logger.Info("admin logged in", zap.String("client_ip", c.ClientIP()))
	c.Redirect(http.StatusFound, "/admin/")
}

// LogoutHandler ends the admin session
func (s *Server) LogoutHandler(c *gin.Context) {
	auth.ClearSessionCookie(c, s.secure)
	c.Redirect(http.StatusFound, "/")
}

// AdminPageHandler renders the admin view: every card with edit and delete
// controls, plus the current color slots
func (s *Server) AdminPageHandler(c *gin.Context) {
	items := s.store.Portfolio()
	settings := s.store.Settings()

	name := settings.SalonName
	if name == "" {
		name = defaultSalonName
	}
	hero := settings.HeroImage
	if hero == "" {
		hero = "assets/foto1.jpg"
	}

	values := make(map[string]string)
	for _, slot := range theme.Slots() {
		values[slot.Setting] = slot.Value(settings)
	}

	page := fmt.Sprintf(adminPage,
		html.EscapeString(middleware.CSRFToken(c)),
		html.EscapeString(name),
		middleware.CSRFTokenHTML(c),
		html.EscapeString(portfolio.SafeImageURL(hero)),
		renderColorSlots(values),
		renderOptions(portfolio.Categories(items)),
		s.renderer.Render(items, true, ""),
	)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
