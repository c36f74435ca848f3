// Package server exposes the coverage report over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apicover/apicover/internal/models"
	"github.com/apicover/apicover/internal/render"
)

// RunFunc executes the coverage pipeline and returns a fresh report.
type RunFunc func() (*models.CoverageReport, models.TagMapping, error)

// Server serves rendered coverage reports. Every request runs the pipeline
// anew, so the served report always reflects the schema and feature files on
// disk.
type Server struct {
	engine *gin.Engine
	run    RunFunc
}

// New creates a report server around the given pipeline.
func New(run RunFunc) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		run:    run,
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(corsMiddleware())
	s.engine.Use(requestIDMiddleware())

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/report", s.handleHTMLReport)

	api := s.engine.Group("/api")
	{
		api.GET("/report", s.handleJSONReport)
		api.GET("/health", s.handleHealth)
	}

	ws := newWebSocketHandler(s.run)
	s.engine.GET("/ws/report", gin.WrapH(ws))
}

func (s *Server) handleHTMLReport(c *gin.Context) {
	s.renderReport(c, render.FormatHTML, "text/html; charset=utf-8")
}

func (s *Server) handleJSONReport(c *gin.Context) {
	s.renderReport(c, render.FormatJSON, "application/json; charset=utf-8")
}

func (s *Server) renderReport(c *gin.Context, format render.Format, contentType string) {
	report, mapping, err := s.run()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	renderer, err := render.New(format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out, err := renderer.Render(report, mapping)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, contentType, []byte(out))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handler returns the http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// corsMiddleware adds CORS headers.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware tags every response with a request id.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
