package controller

import (
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/me [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	user, err := ctrl.UserService.GetProfile(claims.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UserUpdateReq true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/me [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.UserUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	user, err := ctrl.UserService.UpdateProfile(claims.UserID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, user)
}
