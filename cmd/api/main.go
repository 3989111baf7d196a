package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"pet-care-log/internal/adapters/auth/identity"
	"pet-care-log/internal/adapters/auth/token"
	"pet-care-log/internal/adapters/storage/postgres"
	"pet-care-log/internal/config"
	"pet-care-log/internal/domain/session"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/router"
)

func main() {
	lg := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		lg.Error("config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	tokens, err := token.New(token.Config{
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Issuer: "pet-care-log",
	})
	if err != nil {
		lg.Error("session tokens", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	idp := identity.NewClient(identity.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		AuthURL:      cfg.OAuthAuthURL,
		TokenURL:     cfg.OAuthTokenURL,
		UserinfoURL:  cfg.OAuthUserinfoURL,
		RedirectURL:  cfg.OAuthRedirectURL,
	})

	// Pool único, creado acá y compartido por todos los requests.
	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		db, err = postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			lg.Error("postgres open", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			lg.Error("postgres schema", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	} else {
		lg.Warn("no database configured, using in-memory store", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: tokens,
		Issuer:       tokens,
		Identity:     idp,
		Admin: session.AdminCredentials{
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		},
		SecureCookies: cfg.SecureCookies,
		DB:            db,
		Logger:        lg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lg.Error("server", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
