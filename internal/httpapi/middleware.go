// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/logging"
	"github.com/pawradar/pawradar/internal/observability"
)

// ctxAccountKey is where requireSession stores the resolved account.
const ctxAccountKey = "session_account"

// requireSession validates the bearer token and loads the account into
// the request context. Every failure is a uniform 401.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorResponse{Error: "missing bearer token"})
			return
		}

		account, err := s.auth.ResolveToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorResponse{Error: "invalid or expired session"})
			return
		}

		c.Set(ctxAccountKey, account)
		c.Next()
	}
}

// sessionAccount returns the account loaded by requireSession.
func sessionAccount(c *gin.Context) *auth.Account {
	return c.MustGet(ctxAccountKey).(*auth.Account)
}

// cors allows the configured frontend origin. An empty origin disables
// the headers entirely.
func cors(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin != "" {
			header := c.Writer.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger assigns each request an ID, logs one line per request
// with method, path, status, and duration, and feeds the request counter.
// The ID rides the request context so every record logged while handling
// the request carries it, and is echoed in the X-Request-ID header.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := ulid.Make().String()
		ctx := logging.ContextWithAttrs(c.Request.Context(),
			slog.String("request_id", requestID))
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		observability.RecordHTTPRequest(c.FullPath(), c.Request.Method, status)
		s.logger.Info("http request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
