package auth

import "context"

// TokenVerifier verifica un token de sesión y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite un token de sesión firmado para los claims dados.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
}
