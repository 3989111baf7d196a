package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-log/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// SessionCookie es el nombre de la cookie de sesión.
const SessionCookie = "pcl_session"

// AuthContext:
// - Busca el token en Authorization: Bearer o en la cookie de sesión.
// - Si verifier != nil y hay token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: X-Debug-User-ID (+ X-Debug-Role) setea claims.
// - Si no hay claims, el request sigue igual; los handlers deciden 401/403.
func AuthContext(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Dev mode: permitir inyectar user y rol sin verifier
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					role, ok := auth.ParseRole(strings.TrimSpace(r.Header.Get("X-Debug-Role")))
					if !ok {
						role = auth.RoleUser
					}
					claims := auth.Claims{UserID: uid, Role: role}
					next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					token = strings.TrimSpace(c.Value)
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí para no acoplar. El handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

func withClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
