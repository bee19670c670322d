package api

import (
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/AyoubMahfoud/SharingMezzi-sub000/billing"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/parkings"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/trips"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/users"
	"github.com/AyoubMahfoud/SharingMezzi-sub000/vehicles"
)

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// ListVehiclesHandler returns the whole fleet (GET /api/vehicles)
func (s *Server) ListVehiclesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Vehicles.List(r.Context())
		if err != nil {
			s.log.Err(err).Msg("vehicle list failed")
			writeError(w, http.StatusInternalServerError, "could not list vehicles")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetVehicleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid vehicle id")
			return
		}
		vehicle, err := s.repos.Vehicles.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		writeJSON(w, http.StatusOK, vehicle)
	}
}

func (s *Server) CreateVehicleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v vehicles.Vehicle
		if err := readJSON(r, &v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if v.State == "" {
			v.State = vehicles.StateAvailable
		}
		created, err := s.repos.Vehicles.Create(r.Context(), &v)
		if err != nil {
			s.log.Err(err).Msg("vehicle create failed")
			writeError(w, http.StatusInternalServerError, "could not create vehicle")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) UpdateVehicleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid vehicle id")
			return
		}
		var v vehicles.Vehicle
		if err := readJSON(r, &v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		v.ID = id
		if err := s.repos.Vehicles.Update(r.Context(), &v); err != nil {
			if errors.Is(err, vehicles.ErrNotFound) {
				writeError(w, http.StatusNotFound, "vehicle not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "could not update vehicle")
			return
		}
		writeJSON(w, http.StatusOK, &v)
	}
}

func (s *Server) DeleteVehicleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid vehicle id")
			return
		}
		if err := s.repos.Vehicles.Delete(r.Context(), id); err != nil {
			if errors.Is(err, vehicles.ErrNotFound) {
				writeError(w, http.StatusNotFound, "vehicle not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "could not delete vehicle")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ListParkingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Parkings.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not list parkings")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetParkingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid parking id")
			return
		}
		parking, err := s.repos.Parkings.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "parking not found")
			return
		}
		writeJSON(w, http.StatusOK, parking)
	}
}

func (s *Server) CreateParkingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p parkings.Parking
		if err := readJSON(r, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := s.repos.Parkings.Create(r.Context(), &p)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not create parking")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

type startTripRequest struct {
	VehicleID int64 `json:"vehicleId"`
}

type endTripRequest struct {
	ParkingID int64 `json:"parkingId"`
}

// StartTripHandler unlocks a vehicle for the caller (POST /api/trips/start)
func (s *Server) StartTripHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())

		var req startTripRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		trip, err := s.tripSvc.Start(r.Context(), claims.Subject, req.VehicleID)
		if err != nil {
			switch {
			case errors.Is(err, trips.ErrInsufficientCredit):
				writeError(w, http.StatusPaymentRequired, "insufficient credit")
			case errors.Is(err, trips.ErrActiveTrip):
				writeError(w, http.StatusConflict, "a trip is already in progress")
			case errors.Is(err, vehicles.ErrNotAvailable):
				writeError(w, http.StatusConflict, "vehicle not available")
			case errors.Is(err, vehicles.ErrNotFound):
				writeError(w, http.StatusNotFound, "vehicle not found")
			default:
				s.log.Err(err).Msg("trip start failed")
				writeError(w, http.StatusInternalServerError, "could not start trip")
			}
			return
		}
		writeJSON(w, http.StatusCreated, trip)
	}
}

// EndTripHandler docks the vehicle and bills the rider (POST /api/trips/{id}/end)
func (s *Server) EndTripHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())

		tripID, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid trip id")
			return
		}
		var req endTripRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		trip, err := s.tripSvc.End(r.Context(), claims.Subject, tripID, req.ParkingID)
		if err != nil {
			if errors.Is(err, trips.ErrNotFound) {
				writeError(w, http.StatusNotFound, "trip not found")
				return
			}
			s.log.Err(err).Msg("trip end failed")
			writeError(w, http.StatusInternalServerError, "could not end trip")
			return
		}
		writeJSON(w, http.StatusOK, trip)
	}
}

// ListTripsHandler returns the caller's trips; administrators see all trips.
func (s *Server) ListTripsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())

		var (
			list []*trips.Trip
			err  error
		)
		if claims.Role == users.RoleAdministrator {
			list, err = s.repos.Trips.List(r.Context())
		} else {
			list, err = s.repos.Trips.ListByUser(r.Context(), claims.Subject)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not list trips")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

type billingResponse struct {
	Invoices []*billing.Invoice `json:"invoices"`
	Total    float64            `json:"total"`
}

// ListInvoicesHandler returns the caller's invoices (GET /api/billing)
func (s *Server) ListInvoicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())

		invoices, err := s.repos.Invoices.ListByUser(r.Context(), claims.Subject)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not list invoices")
			return
		}
		writeJSON(w, http.StatusOK, billingResponse{
			Invoices: invoices,
			Total:    billing.Total(invoices),
		})
	}
}
