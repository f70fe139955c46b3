package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kellyworkos00-droid/fairm/configs"
	"github.com/kellyworkos00-droid/fairm/middlewares"
	"github.com/kellyworkos00-droid/fairm/mq"
	"github.com/kellyworkos00-droid/fairm/routes"
	"github.com/kellyworkos00-droid/fairm/ws"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	// Serve flags
	port   string
	noSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()
		if port != "" {
			rt.cfg.Port = port
		}
		return runServer(cmd.Context(), rt)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip loading demo data in development")
}

func runServer(ctx context.Context, rt *app) error {
	cfg, log := rt.cfg, rt.log

	if err := configs.Migrate(rt.db); err != nil {
		return err
	}
	if cfg.IsDevelopment() && !noSeed {
		if err := configs.SeedDemo(rt.db, log); err != nil {
			return err
		}
	}

	rdb, err := configs.NewRedisClient(ctx, cfg)
	if err != nil {
		// the catalogue still works uncached
		log.Warn("redis unavailable, product cache disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	events := mq.New(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
	defer events.Close()

	done := make(chan struct{})
	hub := ws.NewNotificationHub(log)
	go hub.Run(done)
	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(done)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		DB:      rt.db,
		Redis:   rdb,
		Events:  events,
		Hub:     hub,
		Limiter: limiter,
		Log:     log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		close(done)
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	close(done)
	log.Info("Server stopped")
	return err
}
