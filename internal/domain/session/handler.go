package session

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/adapters/auth/identity"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const stateCookie = "pcl_oauth_state"

// AdminCredentials es el par fijo de credenciales del camino admin.
type AdminCredentials struct {
	Username string
	Password string
}

func (a AdminCredentials) configured() bool {
	return a.Username != "" && a.Password != ""
}

// Handlers agrupa las dependencias del módulo de sesión.
type Handlers struct {
	Issuer   auth.TokenIssuer
	Provider *identity.Client
	Admin    AdminCredentials
	Log      logger.Logger

	// SecureCookies marca las cookies como Secure (prod detrás de TLS).
	SecureCookies bool
}

func RegisterRoutes(r chi.Router, h Handlers) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", h.loginHandler())
		ar.Get("/oauth/start", h.oauthStartHandler())
		ar.Get("/oauth/callback", h.oauthCallbackHandler())
		ar.Get("/session", h.sessionHandler())
		ar.Post("/logout", h.logoutHandler())
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse es lo que ve el cliente de su propia sesión.
type sessionResponse struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	Token  string `json:"token,omitempty"`
}

// loginHandler godoc
// @Summary Login admin con credenciales fijas
// @Description Compara username/password contra el par configurado. Éxito emite una sesión con rol admin.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /auth/login [post]
func (h Handlers) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Admin.configured() {
			writeError(w, http.StatusServiceUnavailable, "admin login not configured")
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		// Comparación en tiempo constante; se evalúan ambos campos
		// siempre para no filtrar cuál falló.
		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Admin.Username))
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.Admin.Password))
		if userOK&passOK != 1 {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		claims := auth.Claims{
			UserID: "admin",
			Name:   h.Admin.Username,
			Role:   auth.RoleAdmin,
		}

		tok, err := h.Issuer.Issue(r.Context(), claims)
		if err != nil {
			h.Log.Error("issue admin session failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		h.setSessionCookie(w, tok)
		writeJSON(w, http.StatusOK, toSessionResponse(claims, tok))
	}
}

// oauthStartHandler godoc
// @Summary Inicio del camino viewer (OAuth)
// @Description Redirige al consentimiento del proveedor con un state anti-CSRF en cookie.
// @Tags auth
// @Success 302
// @Failure 503 {object} errorResponse
// @Router /auth/oauth/start [get]
func (h Handlers) oauthStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.Provider.IsConfigured() {
			writeError(w, http.StatusServiceUnavailable, "identity provider not configured")
			return
		}

		state := uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/auth",
			MaxAge:   int((10 * time.Minute).Seconds()),
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, h.Provider.AuthCodeURL(state), http.StatusFound)
	}
}

// oauthCallbackHandler godoc
// @Summary Callback del proveedor OAuth
// @Description Valida el state, canjea el code y emite una sesión con rol user (viewer), nunca admin.
// @Tags auth
// @Success 303
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /auth/oauth/callback [get]
func (h Handlers) oauthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(stateCookie)
		if err != nil || strings.TrimSpace(c.Value) == "" ||
			c.Value != r.URL.Query().Get("state") {
			writeError(w, http.StatusBadRequest, "invalid oauth state")
			return
		}

		// El state es de un solo uso.
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    "",
			Path:     "/auth",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		code := r.URL.Query().Get("code")
		if strings.TrimSpace(code) == "" {
			writeError(w, http.StatusBadRequest, "missing code")
			return
		}

		profile, err := h.Provider.Authenticate(r.Context(), code)
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrUnauthorized):
				writeError(w, http.StatusUnauthorized, "identity provider rejected the login")
			case errors.Is(err, identity.ErrNotConfigured):
				writeError(w, http.StatusServiceUnavailable, "identity provider not configured")
			default:
				h.Log.Error("oauth authenticate failed", map[string]any{"err": err.Error()})
				writeError(w, http.StatusBadGateway, "identity provider unavailable")
			}
			return
		}

		// Todo principal del proveedor entra como viewer.
		claims := auth.Claims{
			UserID: profile.ID,
			Email:  profile.Email,
			Name:   profile.Name,
			Role:   auth.RoleUser,
		}

		tok, err := h.Issuer.Issue(r.Context(), claims)
		if err != nil {
			h.Log.Error("issue viewer session failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		h.setSessionCookie(w, tok)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// sessionHandler godoc
// @Summary Sesión actual
// @Tags auth
// @Produce json
// @Success 200 {object} sessionResponse
// @Failure 401 {object} errorResponse
// @Router /auth/session [get]
func (h Handlers) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !claims.Authenticated() {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(claims, ""))
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h Handlers) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h Handlers) setSessionCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func toSessionResponse(c auth.Claims, tok string) sessionResponse {
	return sessionResponse{
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   string(c.Role),
		Token:  tok,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON/writeError están duplicados a propósito en los handlers de
// cada módulo; si aparecen en más módulos recién conviene extraerlos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
