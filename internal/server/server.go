// Package server exposes the chat pipeline over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"AirportChat/internal/format"
	"AirportChat/internal/store"

	"github.com/gin-gonic/gin"
)

// Responder processes one chat turn.
type Responder interface {
	ProcessMessage(ctx context.Context, message, sessionID string) string
}

// Records is the read access the debug and health endpoints need.
type Records interface {
	Ping(ctx context.Context) error
	AircraftList(ctx context.Context, limit int) ([]store.AircraftRecord, error)
}

// Server is the HTTP boundary around the orchestrator.
type Server struct {
	bot     Responder
	records Records
	logger  *slog.Logger
	engine  *gin.Engine
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// New creates the server and registers its routes.
func New(bot Responder, records Records, logger *slog.Logger, debug bool) *Server {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		bot:     bot,
		records: records,
		logger:  logger,
		engine:  engine,
	}

	engine.POST("/chat", s.handleChat)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/debug/aircraft", s.handleDebugAircraft)

	return s
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed body gets the same prompt as an empty message; the
		// pipeline is never invoked.
		c.JSON(http.StatusOK, chatResponse{Reply: format.Prompt(), SessionID: "default"})
		return
	}

	if req.SessionID == "" {
		req.SessionID = "default"
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		c.JSON(http.StatusOK, chatResponse{Reply: format.Prompt(), SessionID: req.SessionID})
		return
	}

	reply := s.bot.ProcessMessage(c.Request.Context(), req.Message, req.SessionID)
	c.JSON(http.StatusOK, chatResponse{Reply: reply, SessionID: req.SessionID})
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.records.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleDebugAircraft(c *gin.Context) {
	records, err := s.records.AircraftList(c.Request.Context(), 10)
	if err != nil {
		s.logger.Error("debug aircraft listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Handler returns the underlying handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the listener and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.engine.Run(addr)
}
