// Package token emite y verifica tokens de sesión JWT (HMAC-SHA256).
// El rol viaja como claim y se fija al emitir; después de eso la sesión
// es de solo lectura.
package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-care-log/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("token: signing secret missing")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid token")
)

const DefaultTTL = 24 * time.Hour

type Config struct {
	// Secret firma los tokens. Obligatorio.
	Secret string

	// TTL de la sesión. Si <= 0 se usa DefaultTTL.
	TTL time.Duration

	// Issuer del claim iss. Opcional.
	Issuer string
}

// Tokens implementa auth.TokenIssuer y auth.TokenVerifier.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func New(cfg Config) (*Tokens, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrNotConfigured
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: strings.TrimSpace(cfg.Issuer),
		now:    time.Now,
	}, nil
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (t *Tokens) Issue(ctx context.Context, c auth.Claims) (string, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("token: claims missing user id")
	}
	if _, ok := auth.ParseRole(string(c.Role)); !ok {
		return "", errors.New("token: claims missing role")
	}

	now := t.now()
	claims := sessionClaims{
		Email: c.Email,
		Name:  c.Name,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) Verify(ctx context.Context, raw string) (auth.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return auth.Claims{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, ErrInvalidToken
	}
	role, ok := auth.ParseRole(claims.Role)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
	}, nil
}
