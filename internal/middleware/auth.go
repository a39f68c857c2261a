package middleware

import (
	"context"
	"errors"
	"net/http"

	"item-portal/internal/auth"
	"item-portal/internal/logger"
	"item-portal/internal/session"

	"github.com/gin-gonic/gin"
)

// unexported, collision-proof context keys
type sessionContextKeyType struct{}
type identityContextKeyType struct{}

var (
	sessionKey  = sessionContextKeyType{}
	identityKey = identityContextKeyType{}
)

// SessionFromContext extracts the request's resolved session.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(session.Session)
	return s, ok
}

// IdentityFromContext extracts the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// AuthGate is the single chokepoint every request passes through. It turns
// the incoming cookie into a live session, re-hydrates the bound identity,
// renews the sliding expiry and attaches both to the request context.
// Handlers never read cookies or the stores directly.
type AuthGate struct {
	sessions *session.Manager
	backend  *auth.Backend
	cookie   session.CookieOptions
}

func NewAuthGate(
	sessions *session.Manager,
	backend *auth.Backend,
	cookie session.CookieOptions,
) *AuthGate {
	return &AuthGate{
		sessions: sessions,
		backend:  backend,
		cookie:   cookie,
	}
}

func (g *AuthGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// 1. Resolve the presented token, if any.
		var sess *session.Session
		if cookie, err := c.Request.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			resolved, err := g.sessions.Resolve(ctx, cookie.Value)
			switch {
			case err == nil:
				sess = resolved
			case errors.Is(err, session.ErrNotFound):
				// expired or unknown, fall through to a fresh one
			default:
				g.fail(c, err)
				return
			}
		}

		// 2. No live session: issue a fresh anonymous one and hand the
		// token to the client.
		if sess == nil {
			fresh, err := g.sessions.CreateAnonymous(ctx)
			if err != nil {
				g.fail(c, err)
				return
			}
			sess = &fresh
			session.SetCookie(c.Writer, fresh.Token, g.cookie)
		}

		// 3. Re-hydrate the bound identity. A session pointing at an
		// identity that no longer resolves is demoted, not trusted.
		var identity *auth.Identity
		if sess.Authenticated() {
			loaded, err := g.backend.Load(ctx, sess.IdentityID)
			if err != nil {
				g.fail(c, err)
				return
			}
			if loaded == nil {
				if err := g.sessions.Unbind(ctx, sess.Token); err != nil {
					g.fail(c, err)
					return
				}
				sess.IdentityID = ""
			}
			identity = loaded
		}

		// 4. Activity renews the sliding window.
		if err := g.sessions.Touch(ctx, sess.Token); err != nil && !errors.Is(err, session.ErrNotFound) {
			g.fail(c, err)
			return
		}

		// 5. Attach session and identity for downstream handlers.
		ctx = context.WithValue(ctx, sessionKey, *sess)
		ctx = context.WithValue(ctx, identityKey, identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (g *AuthGate) fail(c *gin.Context, err error) {
	logger.Error("auth gate failure", map[string]any{
		"request_id": RequestID(c),
		"error":      err.Error(),
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": "server_error",
	})
}

// RequireAuth guards protected routes. It runs after the gate and only
// checks the context; the gate already did the resolving.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not_authenticated",
			})
			return
		}
		c.Next()
	}
}
