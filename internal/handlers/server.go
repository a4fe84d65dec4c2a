// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/auth"
	"github.com/janayne/salon/internal/backup"
	"github.com/janayne/salon/internal/imaging"
	"github.com/janayne/salon/internal/logging"
	"github.com/janayne/salon/internal/middleware"
	"github.com/janayne/salon/internal/portfolio"
	"github.com/janayne/salon/internal/store"
	"github.com/janayne/salon/internal/theme"
)

// Server holds the services the HTTP handlers work with
type Server struct {
	store        *store.Store
	applier      *theme.Applier
	renderer     *portfolio.Renderer
	normalizer   *imaging.Normalizer
	validator    *theme.Validator
	sessions     *auth.Sessions
	backups      *backup.Manager
	passwordHash string
	assetsDir    string
	secure       bool
	logger       *zap.Logger
	now          func() time.Time
}

// Options wires a Server. Store, Normalizer and Sessions are required.
type Options struct {
	Store      *store.Store
	Normalizer *imaging.Normalizer
	Sessions   *auth.Sessions
	// Backups is optional; without it the backup routes answer 404
	Backups      *backup.Manager
	PasswordHash string
	// AssetsDir holds the photos referenced as assets/<name>
	AssetsDir string
	// SecureCookies marks cookies Secure and turns on HSTS
	SecureCookies bool
	Logger        *zap.Logger
}

// NewServer creates the handler set
func NewServer(opts Options) *Server {
	logger := logging.OrNop(opts.Logger)
	return &Server{
		store:        opts.Store,
		applier:      theme.NewApplier(opts.Store, logger),
		renderer:     portfolio.NewRenderer(opts.Store),
		normalizer:   opts.Normalizer,
		validator:    theme.NewValidator(),
		sessions:     opts.Sessions,
		backups:      opts.Backups,
		passwordHash: opts.PasswordHash,
		assetsDir:    opts.AssetsDir,
		secure:       opts.SecureCookies,
		logger:       logger,
		now:          time.Now,
	}
}

// RouterOptions configures the middleware stack
type RouterOptions struct {
	LoginLimiter *middleware.RateLimiter
	AdminRanges  []string
	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string
}

// Router builds the gin engine with every route
func (s *Server) Router(opts RouterOptions) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		s.logger.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.SecurityHeaders(s.secure))
	if opts.LoginLimiter != nil {
		r.Use(middleware.RateLimit(opts.LoginLimiter, "/admin/login", "/api/comments"))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "salon",
		})
	})

	r.GET("/", s.HomeHandler)
	r.GET("/theme.css", s.ThemeCSSHandler)
	r.GET("/assets/*filename", s.ServeAssetHandler)

	api := r.Group("/api")
	api.GET("/portfolio", s.PortfolioHandler)
	api.GET("/categories", s.CategoriesHandler)
	api.GET("/comments", s.CommentsHandler)
	api.POST("/comments", s.CreateCommentHandler)

	admin := r.Group("/admin",
		middleware.AdminAllowlist(opts.AdminRanges, s.logger),
		middleware.CSRF(s.secure),
	)
	admin.GET("/login", s.LoginFormHandler)
	admin.POST("/login", s.LoginHandler)
	admin.POST("/logout", s.LogoutHandler)

	gated := admin.Group("", auth.RequireAdmin(s.sessions))
	gated.GET("/", s.AdminPageHandler)

	adminAPI := gated.Group("/api")
	adminAPI.GET("/settings", s.GetSettingsHandler)
	adminAPI.POST("/settings", s.SaveSettingsHandler)
	adminAPI.POST("/portfolio", s.CreateCardHandler)
	adminAPI.PUT("/portfolio/:id", s.UpdateCardHandler)
	adminAPI.DELETE("/portfolio/:id", s.DeleteCardHandler)
	adminAPI.POST("/images", s.UploadImageHandler)
	adminAPI.GET("/colors/history", s.ColorHistoryHandler)
	adminAPI.POST("/colors/history", s.PushColorHistoryHandler)
	adminAPI.POST("/colors/decode", s.DecodeColorHandler)
	adminAPI.POST("/colors/encode", s.EncodeColorHandler)
	adminAPI.POST("/colors/wheel", s.WheelHandler)
	adminAPI.GET("/export", s.ExportHandler)
	adminAPI.GET("/backups", s.ListBackupsHandler)
	adminAPI.POST("/backups", s.CreateBackupHandler)
	adminAPI.POST("/backups/:id/restore", s.RestoreBackupHandler)

	return r
}

// respondError writes the JSON notification body used by every API route
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondStoreError maps persistence failures to a status and a message the
// admin can act on. Prior state is always intact at this point.
func (s *Server) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrQuotaExceeded):
		respondError(c, http.StatusInsufficientStorage, "Erro ao salvar dados. O armazenamento pode estar cheio.")
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "Item não encontrado.")
	case errors.Is(err, store.ErrSerialize):
		respondError(c, http.StatusBadRequest, "Dados inválidos.")
	default:
		s.logger.Error("store write failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Erro ao salvar dados.")
	}
	_ = c.Error(err)
}
