package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hwdelite/notesvc/internal/common"
)

// bindJSON binds and validates the request body, responding with a 400
// envelope on failure. Returns false if the request was rejected.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			respondError(c, http.StatusBadRequest, "Invalid value for field '"+field+"'")
			return false
		}
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"omitempty,max=50"`
	Password string `json:"password" binding:"omitempty,min=5"`
}

// handleSignup serves both revisions of signup: with a password it creates a
// password-backed account immediately; without one it falls back to the OTP
// flow of handleRequestOTP.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Password == "" {
		s.issueOTP(c, req.Email, req.Name, true)
		return
	}

	if len(strings.TrimSpace(req.Name)) < 2 {
		respondError(c, http.StatusBadRequest, "Name must be at least 2 characters")
		return
	}

	result, err := s.auth.RegisterWithPassword(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			respondError(c, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.Error(c.Request.Context(), "signup error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(c, http.StatusOK, "Signup successful", gin.H{
		"token": result.Token,
		"user":  toUserPayload(result.User),
	})
}

type requestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (s *Server) handleRequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	s.issueOTP(c, req.Email, "", false)
}

// issueOTP runs the shared OTP issuance flow. The acknowledgment never
// contains the code; only the signup/login message variant differs.
func (s *Server) issueOTP(c *gin.Context, email, name string, distinguishSignup bool) {
	result, err := s.auth.RequestOTP(c.Request.Context(), email, name)
	if err != nil {
		s.logger.Error(c.Request.Context(), "send otp error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	otpIssuedTotal.Inc()

	message := "OTP sent"
	if distinguishSignup {
		if result.Created {
			message = "OTP sent for signup"
		} else {
			message = "OTP sent for login"
		}
	}
	respond(c, http.StatusOK, message, nil)
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

func (s *Server) handleVerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	s.verifyOTP(c, req.Email, req.OTP, "OTP verified")
}

func (s *Server) verifyOTP(c *gin.Context, email, otp, successMessage string) {
	result, err := s.auth.VerifyOTP(c.Request.Context(), email, otp)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrOTPNotRequested):
			otpVerificationsTotal.WithLabelValues("not_requested").Inc()
			respondError(c, http.StatusBadRequest, "OTP not requested")
		case errors.Is(err, common.ErrOTPInvalid):
			otpVerificationsTotal.WithLabelValues("invalid").Inc()
			respondError(c, http.StatusBadRequest, "Invalid or expired OTP")
		default:
			s.logger.Error(c.Request.Context(), "verify otp error", "error", err.Error())
			respondError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	otpVerificationsTotal.WithLabelValues("success").Inc()
	respond(c, http.StatusOK, successMessage, gin.H{
		"token": result.Token,
		"user":  toUserPayload(result.User),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"omitempty,len=6,numeric"`
	Password string `json:"password" binding:"omitempty"`
}

// handleLogin accepts either an OTP or a password; the OTP wins when both
// are present.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.OTP != "" {
		s.verifyOTP(c, req.Email, req.OTP, "Login successful")
		return
	}

	if req.Password == "" {
		respondError(c, http.StatusBadRequest, "OTP or password required")
		return
	}

	result, err := s.auth.LoginWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			respondError(c, http.StatusBadRequest, "Invalid email or password")
			return
		}
		s.logger.Error(c.Request.Context(), "login error", "error", err.Error())
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  toUserPayload(result.User),
	})
}
