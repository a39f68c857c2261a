package handler

import (
	"net/http"

	"item-portal/internal/logger"
	"item-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// Login verifies the credential pair and binds the caller's session to the
// identity. Every failure mode returns the same generic 401 body; which half
// of the pair was wrong is deliberately not disclosed.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	sess, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	identity, err := h.backend.Authenticate(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	if _, err := h.sessions.Bind(c.Request.Context(), sess.Token, identity.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	logger.Info("login succeeded", map[string]any{
		"request_id":  middleware.RequestID(c),
		"identity_id": identity.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":      "logged_in",
		"identity_id": identity.ID,
	})
}

// Logout demotes the caller's session to anonymous. Idempotent: a second
// logout on the same token is a no-op with the same response.
func (h *Handler) Logout(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	if err := h.sessions.Unbind(c.Request.Context(), sess.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	logger.Info("logout", map[string]any{
		"request_id": middleware.RequestID(c),
	})

	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
