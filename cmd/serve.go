package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"dispatch/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	dropdownRefreshSpec = "@every 10m"
	sessionPurgeSpec    = "30 2 * * *"
	cronJobTimeout      = 2 * time.Minute
	shutdownTimeout     = 30 * time.Second
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			app, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			c := newScheduler(app, cfg.Location)
			c.Start()
			defer func() { <-c.Stop().Done() }()

			return runServer(app, ":"+cfg.Port, cfg.CORSOrigins)
		},
	}
}

// CORSConfig allows the dashboard origins to call the API with a bearer
// token.
func CORSConfig(origins []string) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "Accept", "Origin",
		"X-Requested-With", "Authorization", "User-Agent", "Cache-Control", "X-Host-Name",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Disposition", "Content-Type"}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// NewRouter builds the gin engine with every route and the swagger UI.
func NewRouter(api handlers.API, origins []string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(CORSConfig(origins)))
	r.MaxMultipartMemory = 16 << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handlers.RegisterRoutes(r, api)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	return r
}

func runServer(app *App, addr string, origins []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(app.API, origins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("server exiting")
	return nil
}

// newScheduler registers the background jobs: the dropdown cache refresh
// and the nightly purge of expired sessions.
func newScheduler(app *App, loc *time.Location) *cron.Cron {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cron.VerbosePrintfLogger(log.StandardLogger().WithField("component", "cron"))),
	)

	var refreshing int32
	if _, err := c.AddFunc(dropdownRefreshSpec, func() {
		runJob(&refreshing, "RefreshDropdowns", func(ctx context.Context) error {
			_, err := app.API.Dropdowns.Refresh(ctx)
			return err
		})
	}); err != nil {
		log.WithError(err).Error("failed to schedule dropdown refresh")
	}

	var purging int32
	if _, err := c.AddFunc(sessionPurgeSpec, func() {
		runJob(&purging, "PurgeExpiredSessions", func(ctx context.Context) error {
			n, err := app.API.Auth.PurgeExpiredSessions(ctx)
			if err == nil && n > 0 {
				log.Infof("purged %d expired sessions", n)
			}
			return err
		})
	}); err != nil {
		log.WithError(err).Error("failed to schedule session purge")
	}
	return c
}

// runJob runs fn unless the previous run of the same job is still going.
func runJob(running *int32, name string, fn func(context.Context) error) {
	if !atomic.CompareAndSwapInt32(running, 0, 1) {
		log.Warnf("%s still running, skipping this run", name)
		return
	}
	defer atomic.StoreInt32(running, 0)
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("PANIC in %s: %v\n%s", name, r, debug.Stack())
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cronJobTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.WithError(err).Errorf("%s failed", name)
		return
	}
	log.Debugf("%s completed", name)
}
