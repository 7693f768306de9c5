// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawradar/pawradar/internal/auth"
	"github.com/pawradar/pawradar/internal/mail"
	"github.com/pawradar/pawradar/internal/observability"
	"github.com/pawradar/pawradar/pkg/errutil"
)

// accountResponse is the JSON projection of an account. Credentials
// never appear here.
type accountResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Location  string   `json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

func toAccountResponse(account *auth.Account) accountResponse {
	return accountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		Location:  account.Location,
		Latitude:  account.Latitude,
		Longitude: account.Longitude,
		CreatedAt: account.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type signupRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Password  string   `json:"password"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}

	account, token, err := s.auth.Signup(c.Request.Context(), auth.SignupParams{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account": toAccountResponse(account),
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}

	account, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": toAccountResponse(account),
		"token":   token,
	})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, toAccountResponse(sessionAccount(c)))
}

type updateProfileRequest struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}

	account, err := s.auth.UpdateProfile(c.Request.Context(), sessionAccount(c).ID, auth.ProfileParams{
		Name:      req.Name,
		Phone:     req.Phone,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(account))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}

	err := s.auth.ChangePassword(c.Request.Context(), sessionAccount(c).ID,
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}

func (s *Server) handleVerifyEmail(c *gin.Context) {
	email := c.Param("email")

	registered, err := s.auth.EmailRegistered(c.Request.Context(), email)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !registered {
		c.JSON(http.StatusNotFound, gin.H{"registered": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// handleForgotPassword always answers with the same generic body so the
// response never reveals whether an address is registered. The reset
// email itself is best-effort.
func (s *Server) handleForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}
	if err := auth.ValidateEmail(req.Email); err != nil {
		s.respondError(c, err)
		return
	}

	token, account, err := s.auth.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		errutil.LogError(s.logger, "failed to start password reset", err)
	} else if token != "" {
		s.sendResetEmail(c, account, token)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "if that address is registered, a reset email is on its way",
	})
}

func (s *Server) sendResetEmail(c *gin.Context, account *auth.Account, token string) {
	resetURL := strings.TrimSuffix(s.cfg.ResetBaseURL, "/") + "/" + token
	msg, err := mail.ComposeReset(mail.ResetParams{
		To:       account.Email,
		Name:     account.Name,
		ResetURL: resetURL,
	})
	if err != nil {
		errutil.LogError(s.logger, "failed to compose reset email", err)
		return
	}
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		observability.RecordSideEffectFailure("reset_email")
		errutil.LogError(s.logger, "failed to send reset email", err)
	}
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "malformed JSON body")
		return
	}

	if err := s.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password reset"})
}
