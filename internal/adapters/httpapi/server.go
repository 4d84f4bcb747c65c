// Package httpapi exposes the marker service over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/service"
	"github.com/mikey/markerscan/internal/significance"
	"go.uber.org/zap"
)

const defaultBatchLimit = 1000

// Server serves the marker API
type Server struct {
	svc     *service.MarkerService
	logger  *zap.Logger
	cfg     config.ServerConfig
	engine  *gin.Engine
	httpSrv *http.Server
}

// NewServer builds the router; call Start to listen
func NewServer(svc *service.MarkerService, logger *zap.Logger, cfg config.ServerConfig) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
		cfg:    cfg,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.GET("/healthz", s.health)
	v1 := engine.Group("/v1")
	v1.POST("/analyze", s.analyze)
	v1.POST("/report", s.report)
	v1.POST("/highlights", s.highlights)
	s.engine = engine

	return s
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts listening in the background
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP API starting", zap.String("address", s.cfg.ListenAddress))

	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) analyze(c *gin.Context) {
	s.limitBody(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.svc.Analyze(req.Text, req.Timestamp, req.Sender))
}

func (s *Server) report(c *gin.Context) {
	req, results, ok := s.batch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.svc.Summarize(results, req.TopN))
}

func (s *Server) highlights(c *gin.Context) {
	req, results, ok := s.batch(c)
	if !ok {
		return
	}

	threshold := core.SeverityHigh
	if req.MinSignificance != "" {
		parsed, err := core.ParseSeverity(req.MinSignificance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		threshold = parsed
	}
	c.JSON(http.StatusOK, significance.FilterBySeverity(results, threshold))
}

// batch decodes a batch request and classifies its messages, either
// inline or fetched from the configured source
func (s *Server) batch(c *gin.Context) (*batchRequest, []*core.AnalysisResult, bool) {
	s.limitBody(c)
	ctx := c.Request.Context()

	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	var (
		results []*core.AnalysisResult
		err     error
	)
	if len(req.Messages) > 0 {
		results, err = s.svc.AnalyzeMessages(ctx, req.messages())
		if err == nil {
			results = significance.FilterByScore(results, req.MinScore)
		}
	} else {
		q := req.query()
		if q.Limit <= 0 {
			q.Limit = defaultBatchLimit
		}
		results, err = s.svc.Scan(ctx, q, req.MinScore)
	}
	if err != nil {
		s.logger.Error("Failed to analyze batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze messages"})
		return nil, nil, false
	}
	return &req, results, true
}

func (s *Server) limitBody(c *gin.Context) {
	if s.cfg.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
