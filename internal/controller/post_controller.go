package controller

import (
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService *service.PostService
}

func NewPostController(postService *service.PostService) *PostController {
	return &PostController{PostService: postService}
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PostCreateReq true "Post content"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Router /api/posts [post]
func (ctrl *PostController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PostService.Create(claims.UserID, claims.Role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, p)
}

// List godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/posts [get]
func (ctrl *PostController) List(c *gin.Context) {
	posts, err := ctrl.PostService.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, posts)
}

// Get godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param postId path string true "Post id"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/posts/{postId} [get]
func (ctrl *PostController) Get(c *gin.Context) {
	p, err := ctrl.PostService.Get(c.Param("postId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, p)
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post id"
// @Param request body service.PostUpdateReq true "Fields to replace"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Router /api/posts/{postId} [put]
func (ctrl *PostController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.PostUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PostService.Update(claims.UserID, claims.Role, c.Param("postId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, p)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/posts/{postId} [delete]
func (ctrl *PostController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctrl.PostService.Delete(claims.UserID, claims.Role, c.Param("postId")); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}
