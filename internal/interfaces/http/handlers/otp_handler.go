package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	domainerrors "safealert.backend/internal/domain/errors"
	"safealert.backend/internal/interfaces/http/middleware"
	"safealert.backend/internal/interfaces/http/response"
	"safealert.backend/internal/usecases"
)

// OTPHandler handles verification code endpoints
type OTPHandler struct {
	otpUsecase *usecases.OTPUsecase
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpUsecase *usecases.OTPUsecase) *OTPHandler {
	return &OTPHandler{otpUsecase: otpUsecase}
}

// bearerToken pulls the raw bearer token out of the Authorization header.
// Verification and reset flows carry their correlation token this way
// without going through the auth middleware.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader(middleware.AuthorizationHeader)
	if !strings.HasPrefix(header, middleware.BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, middleware.BearerPrefix)
}

// Resend re-issues the verification code for an email
// POST /api/v1/otp/resend
func (h *OTPHandler) Resend(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	token, err := h.otpUsecase.Resend(c.Request.Context(), input.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "a new code has been sent",
		"token":   token,
	})
}

// Verify checks the submitted code and returns a session token
// POST /api/v1/otp/verify
func (h *OTPHandler) Verify(c *gin.Context) {
	var input struct {
		OTP int `json:"otp" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	sessionToken, err := h.otpUsecase.Verify(c.Request.Context(), bearerToken(c), input.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "account verified",
		"token":   sessionToken,
	})
}
