package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fcmrelay/appconfig"
	"fcmrelay/fcm"
	"fcmrelay/metrics"
	"fcmrelay/middleware"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, log, err := startup()
			if err != nil {
				return err
			}
			defer log.Sync()
			if port != "" {
				server.Port = port
			}

			metrics.Register()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, log, server, fcm.NewRelay(log))
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

func newRouter(log *zap.Logger, server appconfig.ServerConfig, relay *fcm.Relay) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
		middleware.CORS(server.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": Version,
			"service": "fcmrelay",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	relay.RegisterRoutes(r)
	return r
}

func runServer(ctx context.Context, log *zap.Logger, server appconfig.ServerConfig, relay *fcm.Relay) error {
	if server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              server.Addr(),
		Handler:           newRouter(log, server, relay),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("fcmrelay listening", zap.String("addr", srv.Addr), zap.String("version", Version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
