package controllers

import (
	"errors"
	"net/http"
	"strings"

	"hotel-reservation-api/services"
	"hotel-reservation-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	UserSvc *services.UserService
}

func NewAuthController(svc *services.UserService) *AuthController {
	return &AuthController{UserSvc: svc}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := ctrl.UserSvc.Authenticate(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		handleServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
