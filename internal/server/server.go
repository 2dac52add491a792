// Package server exposes the wall over a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/ppiankov/lovewall/internal/model"
	"github.com/ppiankov/lovewall/internal/ratelimit"
	"github.com/ppiankov/lovewall/internal/wall"
)

const shutdownTimeout = 10 * time.Second

// Server serves one wall over HTTP
type Server struct {
	wall    *wall.Wall
	config  model.ServerConfig
	logger  *zap.Logger
	limiter *ratelimit.Limiter
	engine  *gin.Engine
}

// New creates a server. reg receives HTTP metrics and backs /metrics.
func New(w *wall.Wall, config model.ServerConfig, logger *zap.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		wall:    w,
		config:  config,
		logger:  logger,
		limiter: ratelimit.NewLimiter(config.RateLimit, config.RateBurst),
	}
	s.engine = s.router(reg)
	return s
}

func (s *Server) router(reg *prometheus.Registry) *gin.Engine {
	router := gin.New()

	router.Use(requestID())
	router.Use(accessLog(s.logger))
	router.Use(recovery(s.logger))
	router.Use(cors.New(corsConfig(s.config.AllowedOrigins)))
	router.Use(newHTTPMetrics(reg).middleware())

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	v1.Use(rateLimit(s.limiter))
	{
		v1.GET("/proof", s.listProof)
		v1.GET("/proof/:id", s.getProof)
		v1.GET("/categories", s.listCategories)
		v1.GET("/insight", s.getInsight)
	}

	return router
}

// corsConfig allows the configured origins; none or "*" allows any origin
func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	if len(origins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = origins
	return config
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the insight fetch, serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.wall.Start(ctx)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg conc.WaitGroup
	defer wg.Wait()
	wg.Go(func() { s.limiter.Run(runCtx, time.Minute) })

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.config.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
