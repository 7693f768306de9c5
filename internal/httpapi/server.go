// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package httpapi exposes the PawRadar JSON API over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/mail"
	"github.com/pawradar/pawradar/internal/pets"
	"github.com/pawradar/pawradar/internal/reports"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr         string
	CORSOrigin   string
	ResetBaseURL string
}

// Server serves the JSON API.
type Server struct {
	cfg     Config
	auth    *auth.Service
	pets    *pets.Service
	reports *reports.Service
	mailer  mail.Mailer
	logger  *slog.Logger

	engine     *gin.Engine
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates a Server. A nil logger falls back to slog.Default.
func NewServer(
	cfg Config,
	authSvc *auth.Service,
	petSvc *pets.Service,
	reportSvc *reports.Service,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		auth:    authSvc,
		pets:    petSvc,
		reports: reportSvc,
		mailer:  mailer,
		logger:  logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors(cfg.CORSOrigin))
	engine.Use(s.requestLogger())
	s.registerRoutes(engine)
	s.engine = engine

	return s
}

// Handler returns the HTTP handler, which tests drive directly with
// httptest instead of a listening socket.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// registerRoutes wires all endpoints. Routes split into a public group
// and a session-guarded group.
func (s *Server) registerRoutes(r *gin.Engine) {
	r.POST("/auth", s.handleSignup)
	r.POST("/auth/token", s.handleLogin)
	r.GET("/verify-email/:email", s.handleVerifyEmail)
	r.POST("/forgot-password", s.handleForgotPassword)
	r.POST("/reset-password", s.handleResetPassword)
	r.POST("/report", s.handleCreateReport)

	session := r.Group("")
	session.Use(s.requireSession())
	session.GET("/me", s.handleMe)
	session.PUT("/user", s.handleUpdateProfile)
	session.PUT("/user-password", s.handleChangePassword)
	session.POST("/pet", s.handleCreatePet)
	session.GET("/pet", s.handleMyPets)
	session.GET("/pet/:id", s.handleGetPet)
	session.PUT("/pet/:id", s.handleUpdatePet)
	session.DELETE("/pet/:id", s.handleDeletePet)
	session.GET("/pet/:id/reports", s.handlePetReports)
	session.GET("/pet-around", s.handlePetsAround)
}

// Start begins serving. It returns an error channel that receives any
// serve failure; the channel is closed on graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.Code("API_LISTEN_FAILED").With("addr", s.cfg.Addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the server, letting in-flight requests
// finish until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.Code("API_SHUTDOWN_FAILED").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the listen address, or "" when not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
