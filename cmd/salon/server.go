// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/janayne/salon/internal/auth"
	"github.com/janayne/salon/internal/backup"
	"github.com/janayne/salon/internal/config"
	"github.com/janayne/salon/internal/handlers"
	"github.com/janayne/salon/internal/imaging"
	"github.com/janayne/salon/internal/middleware"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the Salon HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		mustInitConfig()

		logger := newLogger()
		defer logger.Sync()

		s := openStore(logger)
		if config.GetBool("storage.seed_on_start") {
			if _, err := s.Seed(); err != nil {
				logger.Fatal("failed to seed store", zap.Error(err))
			}
		}

		opts := imaging.DefaultOptions()
		if n := config.GetInt("images.max_width"); n > 0 {
			opts.MaxWidth = n
		}
		if n := config.GetInt("images.max_height"); n > 0 {
			opts.MaxHeight = n
		}
		if n := config.GetInt("images.quality"); n > 0 {
			opts.Quality = n
		}
		if f := config.GetString("images.format"); f != "" {
			opts.Format = f
		}
		opts.MaxBytes = config.GetInt64("images.max_upload_bytes")
		if n := config.GetInt64("images.max_source_pixels"); n > 0 {
			opts.MaxPixels = n
		}
		normalizer := imaging.NewNormalizer(opts, nil, logger)

		secret := config.GetString("auth.jwt_secret")
		if secret == "CHANGE_ME_IN_PRODUCTION_USE_ENV_VAR" {
			logger.Warn("auth.jwt_secret is the default value, set SALON_AUTH_JWT_SECRET")
		}
		sessions := auth.NewSessions(secret, time.Duration(config.GetInt("auth.session_hours"))*time.Hour)

		backupManager := backup.NewManager(config.GetString("backups.path"), s, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var schedulerDone <-chan struct{}
		if config.GetBool("backups.enable_auto_backup") {
			scheduler := backup.NewScheduler(backupManager)
			if d := config.GetDuration("backups.interval"); d > 0 {
				scheduler.BackupInterval = d
			}
			if n := config.GetInt("backups.retention"); n > 0 {
				scheduler.Retention = n
			}
			schedulerDone = scheduler.Start(ctx)
			logger.Info("backup scheduler started",
				zap.Duration("interval", scheduler.BackupInterval),
				zap.Int("retention", scheduler.Retention),
			)
		}

		loginLimiter := middleware.NewRateLimiter(config.GetInt("ratelimit.attempts"), config.GetDuration("ratelimit.window"))
		defer loginLimiter.Close()

		gin.SetMode(gin.ReleaseMode)
		server := handlers.NewServer(handlers.Options{
			Store:         s,
			Normalizer:    normalizer,
			Sessions:      sessions,
			Backups:       backupManager,
			PasswordHash:  config.GetString("admin.password_hash"),
			AssetsDir:     config.GetString("server.assets_dir"),
			SecureCookies: config.GetBool("server.secure_cookies"),
			Logger:        logger,
		})
		router := server.Router(handlers.RouterOptions{
			LoginLimiter:   loginLimiter,
			AdminRanges:    config.GetStringSlice("admin.allowed_ips"),
			TrustedProxies: config.GetStringSlice("server.trusted_proxies"),
		})

		httpServer := &http.Server{
			Addr:              fmt.Sprintf(":%s", config.GetString("server.port")),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("starting HTTP server", zap.String("addr", httpServer.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				logger.Error("server error", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Info("shutting down")
		}
		stop()

		timeout := config.GetDuration("server.shutdown_timeout")
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}

		if schedulerDone != nil {
			<-schedulerDone
		}
		logger.Info("server stopped")
	},
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
