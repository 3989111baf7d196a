// Package config junta toda la configuración del proceso en un solo
// lugar y la valida al arranque. Nada más adelante vuelve a leer env.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"pet-care-log/internal/adapters/storage/postgres"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DSN listo para postgres.Open. Vacío => repos in-memory (dev).
	DatabaseDSN string

	AdminUsername string
	AdminPassword string

	SessionSecret string
	SessionTTL    time.Duration

	OAuthClientID     string
	OAuthClientSecret string
	OAuthAuthURL      string
	OAuthTokenURL     string
	OAuthUserinfoURL  string
	OAuthRedirectURL  string

	SecureCookies bool
}

// Load lee .env (si existe) y el process env, y falla rápido si falta
// algo obligatorio, nombrando la variable.
func Load() (Config, error) {
	_ = godotenv.Load() // allow .env for local runs

	cfg := Config{
		Port: envOr("PORT", "8080"),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    24 * time.Hour,

		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthAuthURL:      os.Getenv("OAUTH_AUTH_URL"),
		OAuthTokenURL:     os.Getenv("OAUTH_TOKEN_URL"),
		OAuthUserinfoURL:  os.Getenv("OAUTH_USERINFO_URL"),
		OAuthRedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),

		SecureCookies: boolEnv("SECURE_COOKIES"),
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: SESSION_TTL must be a positive duration, got %q", v)
		}
		cfg.SessionTTL = d
	}

	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("config: SESSION_SECRET is required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return Config{}, fmt.Errorf("config: ADMIN_USERNAME and ADMIN_PASSWORD are required")
	}

	dsn, err := databaseDSN()
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseDSN = dsn

	return cfg, nil
}

// databaseDSN: DATABASE_URL manda; si no está, se arma desde los
// parámetros discretos DB_*. Sin nada de eso, queda vacío (in-memory).
func databaseDSN() (string, error) {
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		return dsn, nil
	}

	host := strings.TrimSpace(os.Getenv("DB_HOST"))
	if host == "" {
		return "", nil
	}

	dsn, err := postgres.BuildDSN(postgres.ConnConfig{
		Host:       host,
		Port:       os.Getenv("DB_PORT"),
		User:       os.Getenv("DB_USER"),
		Password:   os.Getenv("DB_PASSWORD"),
		Database:   os.Getenv("DB_NAME"),
		TLS:        boolEnv("DB_TLS"),
		SkipVerify: boolEnv("DB_TLS_SKIP_VERIFY"),
	})
	if err != nil {
		return "", fmt.Errorf("config: %w (set DATABASE_URL or the DB_* variables)", err)
	}
	return dsn, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func boolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
