package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schemaSQL string

// ConnConfig son los parámetros discretos de conexión. Alternativa a un
// DATABASE_URL completo.
type ConnConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string

	// TLS habilita transporte cifrado; SkipVerify desactiva la
	// validación del certificado del servidor.
	TLS        bool
	SkipVerify bool
}

// BuildDSN arma un DSN postgres desde parámetros discretos.
// Falla rápido si falta algo obligatorio.
func BuildDSN(c ConnConfig) (string, error) {
	if strings.TrimSpace(c.Host) == "" {
		return "", errors.New("postgres: host is required")
	}
	if strings.TrimSpace(c.User) == "" {
		return "", errors.New("postgres: user is required")
	}
	if strings.TrimSpace(c.Database) == "" {
		return "", errors.New("postgres: database is required")
	}

	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "5432"
	}

	sslmode := "disable"
	if c.TLS {
		if c.SkipVerify {
			sslmode = "require"
		} else {
			sslmode = "verify-full"
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(strings.TrimSpace(c.Host), port),
		Path:     "/" + strings.TrimSpace(c.Database),
		RawQuery: "sslmode=" + sslmode,
	}
	return u.String(), nil
}

// Open abre un pool de conexiones a Postgres usando pgx (database/sql).
// El pool se crea una vez en main y se comparte entre requests.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para este volumen (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema aplica el DDL embebido. Las sentencias son idempotentes
// (IF NOT EXISTS), así que se puede correr en cada arranque.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}
