package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/redhat-data-and-ai/adlookup/internal/httpapi/handlers"
	"github.com/redhat-data-and-ai/adlookup/internal/httpapi/middleware"
	"github.com/redhat-data-and-ai/adlookup/pkg/config"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type APIServer struct {
	config   *config.AppConfig
	router   *gin.Engine
	handlers *handlers.Handlers
	server   *http.Server
}

func NewAPIServer(cfg *config.AppConfig, h *handlers.Handlers) *APIServer {
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestId())
	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logger.Logger(param.Request.Context()).WithFields(logrus.Fields{
			"method":     param.Method,
			"path":       param.Path,
			"status":     param.StatusCode,
			"latency":    param.Latency,
			"client_ip":  param.ClientIP,
			"user_agent": param.Request.UserAgent(),
			"error":      param.ErrorMessage,
		}).Info("HTTP request")
		return ""
	}))
	router.Use(gin.Recovery())

	s := &APIServer{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	s.router.GET("/api/v1/status", s.handlers.GetStatus)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := s.router.Group("/api/v1/users")
	users.Use(middleware.BasicAuth(s.config))

	users.GET("/:username/profile", s.handlers.GetProfile)
	users.GET("/:username/enabled", s.handlers.GetEnabled)
	users.GET("/:username/account", s.handlers.GetAccount)
	users.GET("/:username/sweep", s.handlers.GetSweepStatus)
}

// Handler returns the router wrapped with request tracing.
func (s *APIServer) Handler() http.Handler {
	return nethttp.Middleware(opentracing.GlobalTracer(), s.router,
		nethttp.OperationNameFunc(func(r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}))
}

// Start serves the API until ctx is canceled, then shuts the server down gracefully.
func (s *APIServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.config.APIServer.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.stopOnDone(ctx)

	logrus.WithField("address", s.server.Addr).Info("starting http API server")
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			logrus.Info("http API server stopped")
			return nil
		}
		return fmt.Errorf("failed to start http API server : %w", err)
	}

	return nil
}

func (s *APIServer) stopOnDone(ctx context.Context) {
	<-ctx.Done()
	logrus.Info("turning down http API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during HTTP API server shutdown")
	}
}
