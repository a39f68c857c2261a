package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"item-portal/internal/auth"
	"item-portal/internal/auth/credentials"
	"item-portal/internal/config"
	"item-portal/internal/handler"
	"item-portal/internal/items"
	"item-portal/internal/middleware"
	"item-portal/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	var cleanup []func() error
	if infra.DB != nil {
		cleanup = append(cleanup, infra.DB.Close)
	}

	var sessionStore session.Store
	switch cfg.SessionStore {
	case "redis":
		sessionStore = session.NewRedisStore(infra.Redis.Client)
	case "memory":
		memStore := session.NewMemoryStore(time.Minute)
		cleanup = append(cleanup, func() error {
			memStore.Close()
			return nil
		})
		sessionStore = memStore
	default:
		return nil, nil, fmt.Errorf("app: unknown session store %q", cfg.SessionStore)
	}

	var credentialStore credentials.Store
	var itemStore items.Store
	switch cfg.CredentialStore {
	case "postgres":
		credentialStore = credentials.NewPostgresStore(infra.DB)
		itemStore = items.NewPostgresStore(infra.DB)
	case "memory":
		seeds := make(map[string]string, len(cfg.SeedUsers))
		for _, u := range cfg.SeedUsers {
			seeds[u.ID] = u.Password
		}
		memCreds, err := credentials.NewMemoryStore(seeds)
		if err != nil {
			return nil, nil, err
		}
		credentialStore = memCreds
		itemStore = items.NewMemoryStore(items.DefaultItems())
	default:
		return nil, nil, fmt.Errorf("app: unknown credential store %q", cfg.CredentialStore)
	}

	backend, err := auth.NewBackend(credentialStore)
	if err != nil {
		return nil, nil, err
	}

	sessionManager := session.NewManager(sessionStore, cfg.SessionWindow)

	gate := middleware.NewAuthGate(sessionManager, backend, session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
	})

	portalHandler := handler.NewHandler(backend, sessionManager, itemStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.WithRequestID())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every other route sits behind the gate.
	router.Use(gate.Handler())

	portalHandler.RegisterRoutes(router)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		var firstErr error
		for _, fn := range cleanup {
			if err := fn(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}, nil
}
