// Package httpapi serves the public, read-only JSON API: election listings,
// results and receipt verification.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/evote/internal/logging"
	"github.com/dmitrijs2005/evote/internal/server/models"
	"github.com/gin-gonic/gin"
)

type ElectionReader interface {
	Get(ctx context.Context, id string) (*models.Election, error)
	List(ctx context.Context) ([]*models.Election, error)
}

type ResultsReader interface {
	ComputeResults(ctx context.Context, electionID string) (*models.Results, error)
	Verify(ctx context.Context, code string) (*models.Verification, error)
}

type PublicationReader interface {
	Latest(ctx context.Context, electionID string) (*models.Publication, string, error)
}

const shutdownTimeout = 5 * time.Second

type Server struct {
	address      string
	logger       logging.Logger
	elections    ElectionReader
	results      ResultsReader
	publications PublicationReader
	router       *gin.Engine
}

// NewServer builds the router. publications may be nil, in which case the
// publication endpoint is not served.
func NewServer(address string, l logging.Logger, elections ElectionReader, results ResultsReader, publications PublicationReader) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		address:      address,
		logger:       l.With("module", "http_server"),
		elections:    elections,
		results:      results,
		publications: publications,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", s.health)

	public := router.Group("/api")
	public.GET("/elections", s.listElections)
	public.GET("/elections/:id", s.getElection)
	public.GET("/elections/:id/results", s.getResults)
	if s.publications != nil {
		public.GET("/elections/:id/publication", s.getPublication)
	}
	public.GET("/verify/:code", s.verify)

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
