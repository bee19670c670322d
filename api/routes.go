package api

import "net/http"

func (s *Server) initRoutes() {
	// Public auth endpoints
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))

	// Bearer-protected endpoints
	s.RegisterRouteHandler("GET "+RouteUserProfile, ChainMiddleware(s.ProfileHandler(), s.authedAPI()...))

	s.RegisterRouteHandler("GET "+RouteVehicles, ChainMiddleware(s.ListVehiclesHandler(), s.authedAPI()...))
	s.RegisterRouteHandler("GET "+RouteVehicleID, ChainMiddleware(s.GetVehicleHandler(), s.authedAPI()...))
	s.RegisterRouteHandler("POST "+RouteVehicles, ChainMiddleware(s.CreateVehicleHandler(), s.adminAPI()...))
	s.RegisterRouteHandler("PUT "+RouteVehicleID, ChainMiddleware(s.UpdateVehicleHandler(), s.adminAPI()...))
	s.RegisterRouteHandler("DELETE "+RouteVehicleID, ChainMiddleware(s.DeleteVehicleHandler(), s.adminAPI()...))

	s.RegisterRouteHandler("GET "+RouteParkings, ChainMiddleware(s.ListParkingsHandler(), s.authedAPI()...))
	s.RegisterRouteHandler("GET "+RouteParkingID, ChainMiddleware(s.GetParkingHandler(), s.authedAPI()...))
	s.RegisterRouteHandler("POST "+RouteParkings, ChainMiddleware(s.CreateParkingHandler(), s.adminAPI()...))

	s.RegisterRouteHandler("POST "+RouteTripStart, ChainMiddleware(s.StartTripHandler(), s.authedAPI()...))
	s.RegisterRouteHandler("POST "+RouteTripEnd, ChainMiddleware(s.EndTripHandler(), s.authedAPI()...))
	s.RegisterRouteHandler("GET "+RouteTrips, ChainMiddleware(s.ListTripsHandler(), s.authedAPI()...))

	s.RegisterRouteHandler("GET "+RouteBilling, ChainMiddleware(s.ListInvoicesHandler(), s.authedAPI()...))
}

func (s *Server) authedAPI() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.APIMiddleware(), s.RequireAuth())
}

func (s *Server) adminAPI() []func(http.HandlerFunc) http.HandlerFunc {
	return append(s.APIMiddleware(), s.RequireAuth(), s.RequireAdmin())
}
