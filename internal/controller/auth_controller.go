package controller

import (
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterReq true "Registration details"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req service.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	user, err := ctrl.AuthService.Register(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, user)
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginReq true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResp}
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req service.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	resp, err := ctrl.AuthService.Login(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, resp)
}
