// Package identity habla con el proveedor de identidad externo (OAuth
// authorization code). Cualquier principal que autentique por acá entra
// como viewer; el rol admin nunca sale de este camino.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/platform/httpclient"

	"golang.org/x/oauth2"
)

var (
	ErrNotConfigured = errors.New("identity provider not configured")
	ErrUnauthorized  = errors.New("identity provider rejected the code")
	ErrUpstream      = errors.New("identity provider upstream error")
)

// Config del proveedor. Todo viene de env vars en quien lo instancia.
type Config struct {
	ClientID     string
	ClientSecret string

	AuthURL     string
	TokenURL    string
	UserinfoURL string
	RedirectURL string

	// Scopes a pedir. Si está vacío: openid, email, profile.
	Scopes []string

	// Timeout HTTP para el fetch de userinfo.
	Timeout time.Duration
}

// Profile es lo único que nos interesa del proveedor.
type Profile struct {
	ID    string
	Email string
	Name  string
}

type Client struct {
	oauth       *oauth2.Config
	userinfoURL string
	httpClient  *httpclient.Client
}

func NewClient(cfg Config) *Client {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     strings.TrimSpace(cfg.ClientID),
			ClientSecret: strings.TrimSpace(cfg.ClientSecret),
			RedirectURL:  strings.TrimSpace(cfg.RedirectURL),
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  strings.TrimSpace(cfg.AuthURL),
				TokenURL: strings.TrimSpace(cfg.TokenURL),
			},
		},
		userinfoURL: strings.TrimSpace(cfg.UserinfoURL),
		httpClient:  httpclient.New(cfg.Timeout),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil &&
		c.oauth.ClientID != "" &&
		c.oauth.ClientSecret != "" &&
		c.oauth.Endpoint.AuthURL != "" &&
		c.oauth.Endpoint.TokenURL != "" &&
		c.userinfoURL != ""
}

// AuthCodeURL arma la URL de consentimiento del proveedor.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Authenticate canjea el code por un access token y trae el perfil
// desde el endpoint de userinfo.
func (c *Client) Authenticate(ctx context.Context, code string) (Profile, error) {
	if !c.IsConfigured() {
		return Profile{}, ErrNotConfigured
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Profile{}, ErrUnauthorized
	}

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil &&
			(rerr.Response.StatusCode == http.StatusUnauthorized || rerr.Response.StatusCode == http.StatusBadRequest) {
			return Profile{}, ErrUnauthorized
		}
		return Profile{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// Formato de userinfo estándar OIDC; algunos proveedores usan "id"
	// en vez de "sub".
	var out struct {
		Sub   string `json:"sub"`
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	headers := map[string]string{
		"Authorization": "Bearer " + tok.AccessToken,
	}
	if err := c.httpClient.DoJSON(ctx, http.MethodGet, c.userinfoURL, headers, nil, &out); err != nil {
		var herr *httpclient.HTTPError
		if errors.As(err, &herr) && (herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden) {
			return Profile{}, ErrUnauthorized
		}
		return Profile{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	id := strings.TrimSpace(out.Sub)
	if id == "" {
		id = strings.TrimSpace(out.ID)
	}
	if id == "" {
		return Profile{}, errors.New("identity response missing subject")
	}

	return Profile{
		ID:    id,
		Email: strings.TrimSpace(out.Email),
		Name:  strings.TrimSpace(out.Name),
	}, nil
}
