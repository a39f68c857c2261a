package handler

import (
	"net/http"

	"item-portal/internal/auth"
	"item-portal/internal/items"
	"item-portal/internal/middleware"
	"item-portal/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler serves the four-operation auth surface plus the protected item
// query. Session and identity always come from the request context the gate
// populated; no handler touches cookies or the stores directly.
type Handler struct {
	backend  *auth.Backend
	sessions *session.Manager
	items    items.Store
}

func NewHandler(
	backend *auth.Backend,
	sessions *session.Manager,
	items items.Store,
) *Handler {
	return &Handler{
		backend:  backend,
		sessions: sessions,
		items:    items,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/api/me", h.Me)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	api.GET("/items", h.Items)
}

// Me reports the identity bound to the caller's session, or null. This is
// the "who am I" query the client-side auth cache refreshes from.
func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"identity_id": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"identity_id": identity.ID})
}

// Items is the protected query. RequireAuth already established the
// identity; the item store is only ever called with that verified id.
func (h *Handler) Items(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		// unreachable behind RequireAuth, but fail closed anyway
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
		return
	}

	list, err := h.items.ListFor(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"identity_id": identity.ID,
		"items":       list,
	})
}
