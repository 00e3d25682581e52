package controllers

import (
	"net/http"

	"hotel-reservation-api/models"
	"hotel-reservation-api/services"
	"hotel-reservation-api/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type createRoomRequest struct {
	Number    string `json:"number" binding:"required"`
	RoomClass string `json:"room_class" binding:"required"`
}

type updateRoomRequest struct {
	RoomClass string `json:"room_class" binding:"required"`
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room, err := ctrl.RoomSvc.Create(models.Room{
		Number:        req.Number,
		RoomClassCode: req.RoomClass,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	room, err := ctrl.RoomSvc.GetByNumber(c.Param("number"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room, err := ctrl.RoomSvc.Update(c.Param("number"), req.RoomClass)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	if err := ctrl.RoomSvc.Delete(c.Param("number")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
