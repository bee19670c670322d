// Package api is the backend JSON API: credential login, profile lookup and
// fleet/trip/billing endpoints over the relational store.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/billing"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/internal/config"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/parkings"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/token"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/trips"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

// Repos holds all repository dependencies for the API server.
type Repos struct {
	Users    users.Repo
	Vehicles vehicles.Repo
	Parkings parkings.Repo
	Trips    trips.Repo
	Invoices billing.Repo
}

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	repos   Repos
	tokens  *token.Manager
	tripSvc *trips.Service
	log     zerolog.Logger
}

func New(cfg config.Config, repos Repos, tokens *token.Manager, log zerolog.Logger) (*Server, error) {
	tripSvc, err := trips.NewService(trips.Repos{
		Trips:    repos.Trips,
		Vehicles: repos.Vehicles,
		Users:    repos.Users,
		Invoices: repos.Invoices,
	})
	if err != nil {
		return nil, fmt.Errorf("[api.New] trip service: %w", err)
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		repos:   repos,
		tokens:  tokens,
		tripSvc: tripSvc,
		log:     log,
	}

	if err := s.InitialiseSystem(context.Background()); err != nil {
		return nil, fmt.Errorf("[api.New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	return s, nil
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
