package web

// Route path constants
// All frontend routes are defined here to ensure consistency and prevent typos
const (
	// Public
	RouteIndex          = "/"
	RouteLogin          = "/Login"
	RouteAuthLogin      = "/Auth/Login"
	RouteAuthLogout     = "/Auth/Logout"
	RouteAuthRegister   = "/Auth/Register"
	RouteAuthSetSession = "/Auth/SetSession"

	// Protected pages
	RouteDashboard = "/Dashboard"
	RouteVehicles  = "/Vehicles"
	RouteTrips     = "/Trips"
	RouteBilling   = "/Billing"
	RouteProfile   = "/Profile"
	RouteAdmin     = "/Admin"
)
