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

type UserController struct {
	UserSvc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{UserSvc: svc}
}

type createUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type updateUserRequest struct {
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsStaff   *bool   `json:"is_staff"`
}

func userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

func canAccessUser(requester models.User, id uint) bool {
	return requester.Staff() || requester.ID == id
}

// GetUsers handles GET /users; staff only (enforced in routing).
func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.UserSvc.GetAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /users. The route is public so new guests can
// register themselves.
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := ctrl.UserSvc.Create(services.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (ctrl *UserController) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if !canAccessUser(middleware.CurrentUser(c), id) {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}
	user, err := ctrl.UserSvc.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	requester := middleware.CurrentUser(c)
	if !canAccessUser(requester, id) {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	// only staff may grant or revoke the staff capability
	if req.IsStaff != nil && !requester.Staff() {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}

	user, err := ctrl.UserSvc.Update(id, services.UpdateUserInput{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsStaff:   req.IsStaff,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if !canAccessUser(middleware.CurrentUser(c), id) {
		utils.JSONError(c, http.StatusForbidden, "forbidden")
		return
	}
	if err := ctrl.UserSvc.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
