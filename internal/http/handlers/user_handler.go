// README: User handlers for registration, lookup and rating.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridelink/internal/modules/registry"
	"ridelink/internal/modules/user"
	"ridelink/internal/types"
)

type UserHandler struct {
	registry *registry.Registry
}

func NewUserHandler(reg *registry.Registry) *UserHandler {
	return &UserHandler{registry: reg}
}

type registerDriverReq struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ContactInfo     string `json:"contact_info"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	CarModel        string `json:"car_model"`
	CarPlateNumber  string `json:"car_plate_number"`
	CarCapacity     int    `json:"car_capacity"`
	YearsExperience int    `json:"years_experience"`
}

type registerRiderReq struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	ContactInfo            string `json:"contact_info"`
	Age                    int    `json:"age"`
	Gender                 string `json:"gender"`
	PreferredPaymentMethod string `json:"preferred_payment_method"`
}

type userResponse struct {
	ID          string  `json:"id"`
	Role        string  `json:"role"`
	Name        string  `json:"name"`
	ContactInfo string  `json:"contact_info"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`

	CarModel        string `json:"car_model,omitempty"`
	CarPlateNumber  string `json:"car_plate_number,omitempty"`
	CarCapacity     int    `json:"car_capacity,omitempty"`
	YearsExperience int    `json:"years_experience,omitempty"`

	PreferredPaymentMethod string  `json:"preferred_payment_method,omitempty"`
	TotalMoneySaved        float64 `json:"total_money_saved,omitempty"`
	TotalDistanceCommuted  float64 `json:"total_distance_commuted,omitempty"`
}

func toUserResponse(u *user.User) userResponse {
	resp := userResponse{
		ID:          string(u.ID),
		Role:        string(u.Role),
		Name:        u.Name,
		ContactInfo: u.ContactInfo,
		Age:         u.Age,
		Gender:      u.Gender,
		Rating:      u.Rating,
		RatingCount: u.RatingCount,
	}
	if u.Driver != nil {
		resp.CarModel = u.Driver.CarModel
		resp.CarPlateNumber = u.Driver.CarPlateNumber
		resp.CarCapacity = u.Driver.CarCapacity
		resp.YearsExperience = u.Driver.YearsExperience
	}
	if u.Rider != nil {
		resp.PreferredPaymentMethod = u.Rider.PreferredPaymentMethod
		resp.TotalMoneySaved = u.Rider.TotalMoneySaved
		resp.TotalDistanceCommuted = u.Rider.TotalDistanceCommuted
	}
	return resp
}

func (h *UserHandler) RegisterDriver(c *gin.Context) {
	var req registerDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.CarCapacity < 1 {
		writeError(c, http.StatusBadRequest, "missing name or invalid car capacity")
		return
	}

	// an empty ID is assigned by the registry during registration
	d := user.NewDriver(types.ID(req.ID), req.Name, req.ContactInfo, req.Age, req.Gender, user.DriverInfo{
		CarModel:        req.CarModel,
		CarPlateNumber:  req.CarPlateNumber,
		CarCapacity:     req.CarCapacity,
		YearsExperience: req.YearsExperience,
	})
	if err := h.registry.RegisterUser(d); err != nil {
		writeDomainError(c, err)
		return
	}
	created, err := h.registry.UserByID(d.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toUserResponse(created))
}

func (h *UserHandler) RegisterRider(c *gin.Context) {
	var req registerRiderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(c, http.StatusBadRequest, "missing name")
		return
	}

	r := user.NewRider(types.ID(req.ID), req.Name, req.ContactInfo, req.Age, req.Gender, req.PreferredPaymentMethod)
	if err := h.registry.RegisterUser(r); err != nil {
		writeDomainError(c, err)
		return
	}
	created, err := h.registry.UserByID(r.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toUserResponse(created))
}

func (h *UserHandler) List(c *gin.Context) {
	users := h.registry.AllUsers()
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(c, http.StatusOK, map[string]any{"users": out})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.registry.UserByID(types.ID(c.Param("id")))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toUserResponse(u))
}

type rateUserReq struct {
	Score float64 `json:"score"`
}

func (h *UserHandler) Rate(c *gin.Context) {
	var req rateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id := types.ID(c.Param("id"))
	if err := h.registry.RateUser(id, req.Score); err != nil {
		writeDomainError(c, err)
		return
	}
	u, err := h.registry.UserByID(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"id":           u.ID,
		"rating":       u.Rating,
		"rating_count": u.RatingCount,
	})
}
