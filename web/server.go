// Package web is the server-rendered frontend: it authenticates browsers
// against the backend API, keeps the session and persistent-cookie identity
// caches in sync, and gates access to the protected pages.
package web

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/internal/config"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/web/session"
)

type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	sessions *session.Store
	gateway  *Gateway
	log      zerolog.Logger
}

func New(cfg config.Config, backend AuthAPI, log zerolog.Logger) *Server {
	sessions := session.NewStore(session.WithIdleTimeout(cfg.GetSessionIdleTimeout()))
	gateway := NewGateway(sessions, backend, cfg.GetPersistentCookieMaxAge(), log)

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: sessions,
		gateway:  gateway,
		log:      log,
	}
	s.initRoutes()
	return s
}

// Gateway exposes the auth gateway to handlers needing the current identity.
func (s *Server) Gateway() *Gateway {
	return s.gateway
}

// Sessions exposes the session store, mainly so the entrypoint can run the
// idle sweeper.
func (s *Server) Sessions() *session.Store {
	return s.sessions
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.PageMiddleware()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthSetSession, ChainMiddleware(s.SetSessionHandler(), s.PageMiddleware()...))

	// Protected pages (the gate in PageMiddleware enforces authentication)
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteVehicles, ChainMiddleware(s.PageHandler("Vehicles"), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTrips, ChainMiddleware(s.PageHandler("Trips"), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBilling, ChainMiddleware(s.PageHandler("Billing"), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteProfile, ChainMiddleware(s.ProfilePageHandler(), s.PageMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAdmin, ChainMiddleware(s.PageHandler("Admin"), s.PageMiddleware()...))
}
