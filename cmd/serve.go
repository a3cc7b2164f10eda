package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/glucotrack/glucotrack-api/app"
	"github.com/glucotrack/glucotrack-api/config"
	"github.com/glucotrack/glucotrack-api/endpoint"
	"github.com/glucotrack/glucotrack-api/model"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if autoMigrate {
			if err := model.Migrate(db); err != nil {
				return err
			}
			if err := model.Seed(db); err != nil {
				return err
			}
		}

		rdb, err := config.ConnectRedis()
		if err != nil {
			log.Warn("redis unavailable, alert notifications and rate limiting disabled", "error", err)
		}
		defer func() {
			if err := config.CloseRedis(); err != nil {
				log.Warn("closing redis", "error", err)
			}
		}()

		services := app.New(app.Deps{DB: db, Redis: rdb, Config: cfg, Log: log})

		gin.SetMode(cfg.GinMode)
		router := endpoint.NewRouter(db, services, endpoint.RouterConfig{
			AppName:        cfg.AppName,
			AlertRateLimit: cfg.AlertRateLimit,
			RateWindow:     time.Minute,
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.AppPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Migrate and seed the database before serving")
	rootCmd.AddCommand(serveCmd)
}
