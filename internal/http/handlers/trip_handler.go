// README: Trip handlers for posting, matching, admission and lifecycle transitions.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridelink/internal/modules/location"
	"ridelink/internal/modules/registry"
	"ridelink/internal/modules/trip"
	"ridelink/internal/types"
)

type TripHandler struct {
	registry *registry.Registry
}

func NewTripHandler(reg *registry.Registry) *TripHandler {
	return &TripHandler{registry: reg}
}

type postTripReq struct {
	ID            string `json:"id"`
	DriverID      string `json:"driver_id"`
	OriginName    string `json:"origin_name"`
	OriginArea    string `json:"origin_area"`
	DestName      string `json:"dest_name"`
	DestArea      string `json:"dest_area"`
	DepartureTime string `json:"departure_time"` // "2006-01-02 15:04"
}

type tripResponse struct {
	ID             string   `json:"id"`
	DriverID       string   `json:"driver_id"`
	OriginName     string   `json:"origin_name"`
	OriginArea     string   `json:"origin_area"`
	DestName       string   `json:"dest_name"`
	DestArea       string   `json:"dest_area"`
	DepartureTime  string   `json:"departure_time"`
	DistanceKM     float64  `json:"distance_km"`
	Status         string   `json:"status"`
	PassengerCount int      `json:"passenger_count"`
	Passengers     []string `json:"passengers"`
}

func toTripResponse(t *trip.Trip) tripResponse {
	passengers := make([]string, 0, len(t.Passengers))
	for _, p := range t.Passengers {
		passengers = append(passengers, string(p.ID))
	}
	return tripResponse{
		ID:             string(t.ID),
		DriverID:       string(t.DriverID),
		OriginName:     t.Origin.Name,
		OriginArea:     t.Origin.Area,
		DestName:       t.Destination.Name,
		DestArea:       t.Destination.Area,
		DepartureTime:  t.DepartureTime.Format(timeLayout),
		DistanceKM:     t.DistanceKM,
		Status:         string(t.Status),
		PassengerCount: len(t.Passengers),
		Passengers:     passengers,
	}
}

func tripList(trips []*trip.Trip) []tripResponse {
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}

func (h *TripHandler) Post(c *gin.Context) {
	var req postTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DriverID == "" || req.OriginName == "" || req.DestName == "" {
		writeError(c, http.StatusBadRequest, "missing fields")
		return
	}
	departure, err := time.Parse(timeLayout, req.DepartureTime)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid departure_time, want "+timeLayout)
		return
	}

	// the trip must belong to a registered driver
	d, err := h.registry.UserByID(types.ID(req.DriverID))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if d.Driver == nil {
		writeDomainError(c, registry.ErrNotADriver)
		return
	}

	// an empty ID is assigned by the registry when the trip is posted
	t := trip.New(types.ID(req.ID), d.ID,
		location.New(req.OriginName, req.OriginArea),
		location.New(req.DestName, req.DestArea),
		departure)
	h.registry.PostTrip(t)
	created, err := h.registry.TripByID(t.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toTripResponse(created))
}

func (h *TripHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"trips": tripList(h.registry.AllTrips())})
}

func (h *TripHandler) ListAvailable(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"trips": tripList(h.registry.AvailableTrips())})
}

func (h *TripHandler) Matches(c *gin.Context) {
	desired, err := time.Parse(timeLayout, c.Query("time"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid time, want "+timeLayout)
		return
	}
	origin := location.New(c.Query("origin_name"), c.Query("origin_area"))
	dest := location.New(c.Query("dest_name"), c.Query("dest_area"))

	matches := h.registry.FindMatches(origin, dest, desired)
	writeJSON(c, http.StatusOK, map[string]any{"trips": tripList(matches)})
}

func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.registry.TripByID(types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toTripResponse(t))
}

func (h *TripHandler) Fare(c *gin.Context) {
	id := types.ID(c.Param("id"))
	fare, err := h.registry.TripFare(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"trip_id": id, "fare_per_person": fare})
}

type joinTripReq struct {
	RiderID string `json:"rider_id"`
}

func (h *TripHandler) Join(c *gin.Context) {
	var req joinTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.RiderID == "" {
		writeError(c, http.StatusBadRequest, "missing rider_id")
		return
	}
	id := types.ID(c.Param("id"))
	if err := h.registry.AdmitRider(id, types.ID(req.RiderID)); err != nil {
		writeDomainError(c, err)
		return
	}
	t, err := h.registry.TripByID(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toTripResponse(t))
}

func (h *TripHandler) Start(c *gin.Context) {
	id := types.ID(c.Param("id"))
	if err := h.registry.StartTrip(id); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"trip_id": id, "status": trip.StatusActive})
}

func (h *TripHandler) Complete(c *gin.Context) {
	id := types.ID(c.Param("id"))
	if err := h.registry.CompleteTrip(id); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"trip_id": id, "status": trip.StatusCompleted})
}
