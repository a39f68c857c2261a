package config

import (
	"net/http"
	"os"
	"strings"
	"time"
)

type Config struct {
	AppPort string

	SessionStore  string // "memory" or "redis"
	SessionWindow time.Duration

	CookieSecure   bool
	CookieSameSite http.SameSite

	CredentialStore string // "memory" or "postgres"
	SeedUsers       []SeedUser

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

// SeedUser is a plaintext credential pair used to populate the in-memory
// credential store at startup. Passwords are hashed before storage and the
// plaintext is discarded.
type SeedUser struct {
	ID       string
	Password string
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("APP_PORT", "8080"),

		SessionStore:  getenv("SESSION_STORE", "memory"),
		SessionWindow: getDuration("SESSION_WINDOW", 10*time.Minute),

		CookieSecure:   getenv("COOKIE_SECURE", "true") == "true",
		CookieSameSite: http.SameSiteStrictMode,

		CredentialStore: getenv("CREDENTIAL_STORE", "memory"),
		SeedUsers:       parseSeedUsers(getenv("SEED_USERS", "user1:1234,user2:5678")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// parseSeedUsers parses "id:password,id:password". Malformed entries are
// skipped rather than guessed at.
func parseSeedUsers(raw string) []SeedUser {
	var users []SeedUser
	for _, entry := range strings.Split(raw, ",") {
		id, password, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || id == "" || password == "" {
			continue
		}
		users = append(users, SeedUser{ID: id, Password: password})
	}
	return users
}
