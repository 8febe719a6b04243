package http

import (
	"context"
	"net/http"
	"time"

	"github.com/im45145v/bipulse/internal/config"
	"github.com/im45145v/bipulse/internal/dataset"
	"github.com/im45145v/bipulse/internal/http/middleware"
	"github.com/im45145v/bipulse/internal/metrics"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

// NewServer wires the analytics API around an immutable, already loaded
// dataset. rds may be nil (no rate limiting).
func NewServer(cfg config.Config, ds *dataset.Dataset, rds *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLogLevel(cfg.Log.Level))
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.APIKey)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:client:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.GET("/customers", listCustomersHandler(ds))
	v1.GET("/customers/:id", getCustomerHandler(ds))
	v1.GET("/customers/:id/kpis", customerKPIsHandler(ds))
	v1.GET("/customers/:id/trend", customerTrendHandler(ds))
	v1.GET("/customers/:id/categories", customerCategoriesHandler(ds))
	v1.GET("/customers/:id/summary", customerSummaryHandler(ds))
	v1.GET("/customers/:id/pitch", customerPitchHandler(ds, cfg.Generator.Seed))
	v1.GET("/analytics/overview", overviewHandler(ds))
	v1.GET("/analytics/segments", segmentsHandler(ds))
	v1.GET("/analytics/categories", categoryShareHandler(ds))
	v1.GET("/analytics/revenue", revenueHandler(ds))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	s.e.Logger.Infof("listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func echoLogLevel(level string) gommonlog.Lvl {
	switch level {
	case "debug":
		return gommonlog.DEBUG
	case "warn":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	default:
		return gommonlog.INFO
	}
}
