package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/honeycarbs/recruit-dash/internal/auth"
	"github.com/honeycarbs/recruit-dash/pkg/kintone"
	"github.com/honeycarbs/recruit-dash/pkg/logging"
)

type handlers struct {
	applicants ApplicantService
	auth       AuthService
	logger     *logging.Logger
}

type loginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

func (h *handlers) fetchApplicants(c *gin.Context) {
	snapshot, err := h.applicants.List(c.Request.Context())
	if err != nil {
		var apiErr *kintone.APIError
		if errors.As(err, &apiErr) {
			c.JSON(apiErr.StatusCode, gin.H{"error": "Kintone API error", "details": apiErr.Body})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot.Applicants)
}

// postOnly answers preflight and rejects anything but POST; it reports whether to continue
func postOnly(c *gin.Context) bool {
	switch c.Request.Method {
	case http.MethodPost:
		return true
	case http.MethodOptions:
		c.Status(http.StatusOK)
	default:
		fail(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
	return false
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func (h *handlers) login(c *gin.Context) {
	if !postOnly(c) {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fail(c, http.StatusBadRequest, "Missing username or password")
			return
		}
		h.logger.Warn("login body rejected", "err", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.UserID, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingCredentials):
		fail(c, http.StatusBadRequest, "Missing username or password")
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		h.logger.Error("login failed", "err", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *handlers) verifyAuth(c *gin.Context) {
	if !postOnly(c) {
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("verify body rejected", "err", err)
		fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	session, err := h.auth.Verify(c.Request.Context(), req.Token)
	if err != nil {
		status, message := h.verifyFailure(err)
		fail(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"user":      session.User,
		"loginTime": session.LoginTime,
	})
}

// requireBearer admits only requests with a valid session token in the
// Authorization header
func (h *handlers) requireBearer(c *gin.Context) {
	token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")

	if _, err := h.auth.Verify(c.Request.Context(), strings.TrimSpace(token)); err != nil {
		status, message := h.verifyFailure(err)
		c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
		return
	}
	c.Next()
}

func (h *handlers) verifyFailure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized, "No token provided"
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	default:
		h.logger.Error("verify failed", "err", err)
		return http.StatusInternalServerError, "Internal server error"
	}
}
