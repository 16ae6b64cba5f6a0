package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/domain/nav"
	"github.com/kebelehub/rfm-ui-api/internal/listing"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Reset        ResetServiceInterface
	Flashes      ports.FlashStore
	Prefs        ports.PreferenceStore
	Fetchers     func(resource string) listing.Fetcher
	CookieDomain string
	Logger       *slog.Logger
}

// screens are the list endpoints this service exposes, with the same role
// gates the navigation table advertises for them.
func screens() []struct {
	ListScreen
	Roles []domainauth.Role
} {
	admin := domainauth.RoleAdmin
	officer := domainauth.RoleOfficer
	staff := domainauth.RoleStaff
	resident := domainauth.RoleResident

	return []struct {
		ListScreen
		Roles []domainauth.Role
	}{
		{
			ListScreen: ListScreen{
				Resource:     "residents",
				SearchFields: []string{"full_name", "id_number", "kebele"},
				TabField:     "status",
			},
			Roles: []domainauth.Role{admin, officer},
		},
		{
			ListScreen: ListScreen{
				Resource:     "reports",
				SearchFields: []string{"title", "kebele"},
			},
			Roles: []domainauth.Role{admin, officer},
		},
		{
			ListScreen: ListScreen{
				Resource:     "documents",
				SearchFields: []string{"title", "owner_name"},
				TabField:     "status",
			},
			Roles: []domainauth.Role{admin, officer, staff, resident},
		},
		{
			ListScreen: ListScreen{
				Resource:     "audit",
				SearchFields: []string{"actor", "action"},
			},
			Roles: []domainauth.Role{admin},
		},
	}
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Flashes:      services.Flashes,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	resetHandlers := &ResetHandlers{
		Svc:          services.Reset,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	navHandlers := &NavHandlers{Entries: nav.DefaultEntries()}
	prefsHandlers := &PrefsHandlers{Store: services.Prefs, Logger: logger}

	requireAuth := RequireAuth(services.Auth)
	optionalAuth := OptionalAuth(services.Auth)

	mux.Handle("POST /api/auth/login", http.HandlerFunc(authHandlers.Login))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /api/auth/status", http.HandlerFunc(authHandlers.Status))
	mux.Handle("GET /api/auth/flash", optionalAuth(http.HandlerFunc(authHandlers.Flash)))

	mux.Handle("POST /api/auth/forgot-password", http.HandlerFunc(resetHandlers.RequestCode))
	mux.Handle("POST /api/auth/verify-otp", http.HandlerFunc(resetHandlers.VerifyCode))
	mux.Handle("POST /api/auth/reset-password", http.HandlerFunc(resetHandlers.Complete))
	mux.Handle("POST /api/auth/reset/back", http.HandlerFunc(resetHandlers.Back))
	mux.Handle("GET /api/auth/reset", http.HandlerFunc(resetHandlers.Step))

	mux.Handle("GET /api/notifications", requireAuth(http.HandlerFunc(authHandlers.Notifications)))

	mux.Handle("GET /api/nav", optionalAuth(http.HandlerFunc(navHandlers.Menu)))
	mux.Handle("GET /api/prefs/language", optionalAuth(http.HandlerFunc(prefsHandlers.Language)))
	mux.Handle("PUT /api/prefs/language", requireAuth(http.HandlerFunc(prefsHandlers.SetLanguage)))

	for _, s := range screens() {
		handler, err := NewListHandler(s.ListScreen, services.Fetchers(s.Resource), logger)
		if err != nil {
			return nil, fmt.Errorf("wire list routes: %w", err)
		}
		gate := RequireRole(services.Auth, s.Roles...)
		mux.Handle("GET /api/"+s.Resource, gate(handler))
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}
