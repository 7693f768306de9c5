// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/pawradar/pawradar/pkg/errutil"
)

// errorResponse is the JSON body for every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps a service error onto an HTTP status via its oops code.
func statusFor(err error) int {
	code := errutil.Code(err)
	switch code {
	case "AUTH_INVALID_CREDENTIALS", "AUTH_TOKEN_INVALID", "AUTH_TOKEN_EXPIRED":
		return http.StatusUnauthorized
	case "PET_FORBIDDEN":
		return http.StatusForbidden
	case "ACCOUNT_NOT_FOUND", "PET_NOT_FOUND", "RESET_TOKEN_INVALID":
		return http.StatusNotFound
	case "AUTH_EMAIL_TAKEN":
		return http.StatusConflict
	case "RESET_TOKEN_EXPIRED":
		return http.StatusGone
	case "AUTH_EMAIL_UNDELIVERABLE":
		return http.StatusUnprocessableEntity
	case "PET_IMAGE_UPLOAD_FAILED":
		return http.StatusBadGateway
	}
	if strings.Contains(code, "_INVALID_") || code == "MEDIA_EMPTY_IMAGE" || code == "MEDIA_UNSUPPORTED_TYPE" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes the error response for err. Internal failures get a
// generic message so infrastructure details never leak to clients.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		errutil.LogError(s.logger, "request failed", err)
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}

	msg := err.Error()
	if oopsErr, ok := oops.AsOops(err); ok {
		msg = oopsErr.Error()
	}
	c.JSON(status, errorResponse{Error: msg, Code: errutil.Code(err)})
}

// respondBadRequest writes a 400 for malformed request payloads.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
