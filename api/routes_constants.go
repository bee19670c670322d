package api

// Route path constants
// All backend routes are defined here to ensure consistency and prevent typos
const (
	// Auth
	RouteAuthLogin    = "/api/auth/login"
	RouteAuthRegister = "/api/auth/register"
	RouteUserProfile  = "/api/user/profile"

	// Fleet
	RouteVehicles  = "/api/vehicles"
	RouteVehicleID = "/api/vehicles/{id}"
	RouteParkings  = "/api/parkings"
	RouteParkingID = "/api/parkings/{id}"

	// Trips & billing
	RouteTrips     = "/api/trips"
	RouteTripStart = "/api/trips/start"
	RouteTripEnd   = "/api/trips/{id}/end"
	RouteBilling   = "/api/billing"
)
