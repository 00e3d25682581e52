package controllers

import (
	"net/http"
	"strconv"

	"hotel-reservation-api/middleware"
	"hotel-reservation-api/models"
	"hotel-reservation-api/services"
	"hotel-reservation-api/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

type createReservationRequest struct {
	DateFrom string   `json:"date_from" binding:"required"`
	DateTo   string   `json:"date_to" binding:"required"`
	Name     string   `json:"name"`
	Rooms    []string `json:"rooms"`
}

type updateReservationRequest struct {
	DateFrom *string  `json:"date_from"`
	DateTo   *string  `json:"date_to"`
	Name     *string  `json:"name"`
	Rooms    []string `json:"rooms"`
}

// reservationResponse is the wire representation; duration and
// total_cost are derived on every read, never stored.
type reservationResponse struct {
	ID            uint     `json:"id"`
	ReferenceCode string   `json:"reference_code"`
	DateFrom      string   `json:"date_from"`
	DateTo        string   `json:"date_to"`
	Name          string   `json:"name"`
	Rooms         []string `json:"rooms"`
	TotalCost     float64  `json:"total_cost"`
	Duration      int      `json:"duration"`
	Owner         string   `json:"owner"`
}

func toReservationResponse(r *models.Reservation) reservationResponse {
	rooms := make([]string, 0, len(r.Rooms))
	for _, link := range r.Rooms {
		rooms = append(rooms, link.RoomNumber)
	}
	return reservationResponse{
		ID:            r.ID,
		ReferenceCode: r.ReferenceCode,
		DateFrom:      r.StartDate().Format("2006-01-02"),
		DateTo:        r.EndDate().Format("2006-01-02"),
		Name:          r.Name,
		Rooms:         rooms,
		TotalCost:     r.TotalCost(),
		Duration:      r.Duration(),
		Owner:         r.Owner.Username,
	}
}

func reservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

// canAccess implements the object-level rule: staff can touch any
// reservation, everyone else only their own.
func canAccess(user models.User, r *models.Reservation) bool {
	return user.Staff() || r.OwnerID == user.ID
}

// GetReservations handles GET /reservations. The search filters apply
// here and only here; detail fetches are never filtered.
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	params := services.ReservationSearchParams{
		RoomNumber: c.Query("room_number"),
		Name:       c.Query("name"),
		Date:       c.Query("date"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Duration:   c.Query("duration"),
	}

	reservations, err := ctrl.ReservationSvc.Search(user, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	out := make([]reservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, toReservationResponse(&reservations[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	reservation, err := ctrl.ReservationSvc.Create(user, services.CreateReservationInput{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Name:     req.Name,
		Rooms:    req.Rooms,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReservationResponse(reservation))
}

func (ctrl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	reservation, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !canAccess(middleware.CurrentUser(c), reservation) {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

func (ctrl *ReservationController) UpdateReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	existing, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !canAccess(middleware.CurrentUser(c), existing) {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}

	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	reservation, err := ctrl.ReservationSvc.Update(id, services.UpdateReservationInput{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Name:     req.Name,
		Rooms:    req.Rooms,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

func (ctrl *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}
	existing, err := ctrl.ReservationSvc.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !canAccess(middleware.CurrentUser(c), existing) {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}
	if err := ctrl.ReservationSvc.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
