package controllers

import (
	"net/http"

	"hotel-reservation-api/models"
	"hotel-reservation-api/services"
	"hotel-reservation-api/utils"

	"github.com/gin-gonic/gin"
)

type RoomClassController struct {
	RoomClassSvc *services.RoomClassService
}

func NewRoomClassController(svc *services.RoomClassService) *RoomClassController {
	return &RoomClassController{RoomClassSvc: svc}
}

type createRoomClassRequest struct {
	Code  string   `json:"code" binding:"required"`
	Price *float64 `json:"price" binding:"required"`
}

type updateRoomClassRequest struct {
	Price *float64 `json:"price" binding:"required"`
}

func (ctrl *RoomClassController) GetRoomClasses(c *gin.Context) {
	classes, err := ctrl.RoomClassSvc.GetAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (ctrl *RoomClassController) CreateRoomClass(c *gin.Context) {
	var req createRoomClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	class, err := ctrl.RoomClassSvc.Create(models.RoomClass{
		Code:  req.Code,
		Price: *req.Price,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (ctrl *RoomClassController) GetRoomClass(c *gin.Context) {
	class, err := ctrl.RoomClassSvc.GetByCode(c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (ctrl *RoomClassController) UpdateRoomClass(c *gin.Context) {
	var req updateRoomClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	class, err := ctrl.RoomClassSvc.Update(c.Param("code"), *req.Price)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (ctrl *RoomClassController) DeleteRoomClass(c *gin.Context) {
	if err := ctrl.RoomClassSvc.Delete(c.Param("code")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
