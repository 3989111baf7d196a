package router

import (
	"database/sql"
	"net/http"

	"pet-care-log/internal/adapters/auth/identity"
	mem "pet-care-log/internal/adapters/storage/memory"
	pg "pet-care-log/internal/adapters/storage/postgres"
	"pet-care-log/internal/domain/logs"
	"pet-care-log/internal/domain/session"
	"pet-care-log/internal/middleware"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/ports/auth"
	"pet-care-log/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Options lleva las dependencias armadas en main. El router no lee env:
// la configuración entra explícita, no por estado global.
type Options struct {
	// AuthVerifier puede ser nil (modo dev: headers X-Debug-*).
	AuthVerifier auth.TokenVerifier

	// Issuer habilita las rutas de login/oauth. Nil en modo dev.
	Issuer   auth.TokenIssuer
	Identity *identity.Client
	Admin    session.AdminCredentials

	SecureCookies bool

	// Si viene DB, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Logger opcional; default NewFromEnv.
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var logsRepo logs.Repository
	if opts.DB != nil {
		logsRepo = pg.NewLogsRepo(opts.DB)
	} else {
		logsRepo = mem.NewLogsRepo()
	}

	logsSvc := logs.NewService(logsRepo)
	logs.RegisterRoutes(r, logsSvc, log)

	if opts.Issuer != nil {
		session.RegisterRoutes(r, session.Handlers{
			Issuer:        opts.Issuer,
			Provider:      opts.Identity,
			Admin:         opts.Admin,
			Log:           log,
			SecureCookies: opts.SecureCookies,
		})
	}

	r.Get("/", web.Handler())

	return r
}
