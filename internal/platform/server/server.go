package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingapi "github.com/showbooks/backend/internal/booking/api"
	eventapi "github.com/showbooks/backend/internal/event/api"
	"github.com/showbooks/backend/internal/platform/auth"
	settlementapi "github.com/showbooks/backend/internal/settlement/api"
	treasuryapi "github.com/showbooks/backend/internal/treasury/api"
)

// Server wraps the HTTP engine plus the middleware stack shared by all
// module handlers.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
	port   string
	server *http.Server
}

func NewServer(
	logger *zap.Logger,
	cfgPort string,
	cfgMode string,
	authSvc *auth.Service,
	eventHandler *eventapi.EventHandler,
	settlementHandler *settlementapi.SettlementHandler,
	treasuryHandler *treasuryapi.TreasuryHandler,
	bookingHandler *bookingapi.BookingHandler,
) *Server {
	if cfgMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())

	// request logging through zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		logger.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("cost", cost),
		)
	})

	// CORS for the browser frontend
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// login and health stay outside the JWT gate
	open := r.Group("/api/v1")
	{
		authSvc.RegisterRoutes(open)
		open.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "UP"})
		})
	}

	v1 := r.Group("/api/v1")
	v1.Use(authSvc.Middleware())
	{
		eventHandler.RegisterRoutes(v1)
		settlementHandler.RegisterRoutes(v1)
		treasuryHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
	}

	return &Server{
		engine: r,
		logger: logger,
		port:   cfgPort,
	}
}

func (s *Server) Run() error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.engine,
	}
	s.logger.Info("HTTP server started", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests before exit.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
