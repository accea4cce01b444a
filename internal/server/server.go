// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/solport/launchpad/internal/launchpad"
)

// Server exposes the transaction builder over HTTP. It holds no request
// state; everything mutable lives behind the service.
type Server struct {
	service *launchpad.Service
	logger  *zap.Logger
	httpSrv *http.Server
}

// New creates the server and registers all routes.
func New(listenAddr string, service *launchpad.Service, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		service: service,
		logger:  logger.Named("http"),
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	api := router.Group("/api")
	{
		api.POST("/markets", s.handleCreateMarket)
		api.POST("/swap", s.handleSwap)
		api.POST("/stake", s.handleStake)
		api.POST("/vesting", s.handleVesting)
		api.POST("/vesting/release", s.handleRelease)
		api.POST("/set-curve", s.handleSetCurve)
		api.POST("/free-market", s.handleFreeMarket)
		api.GET("/graduation", s.handleGraduation)
	}
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.httpSrv = &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// requestLogger logs one line per request with latency and status.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Run blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("listening", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
