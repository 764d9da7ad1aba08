package controller

import (
	"net/http"

	"educonnect_backend/internal/model"
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// Upload godoc
// @Summary Upload a shared resource
// @Description Multipart form with the file plus title, description, visibility and audience fields.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param visibility formData string false "public or private"
// @Success 201 {object} util.Response{data=model.Resource}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/resources [post]
func (ctrl *ResourceController) Upload(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}
	src, err := file.Open()
	if err != nil {
		util.BadRequest(c, "cannot read file")
		return
	}
	defer src.Close()

	req := &service.ResourceCreateReq{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Visibility:  model.ResourceVisibility(c.PostForm("visibility")),
		Audience:    c.PostFormArray("audience"),
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}

	res, err := ctrl.ResourceService.Upload(c.Request.Context(), claims.UserID, claims.Role, req, src)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, res)
}

// List godoc
// @Summary List public resources
// @Tags resources
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Resource}
// @Router /api/resources [get]
func (ctrl *ResourceController) List(c *gin.Context) {
	rs, err := ctrl.ResourceService.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, rs)
}

// Get godoc
// @Summary Get a resource by id
// @Tags resources
// @Produce json
// @Param resourceId path string true "Resource id"
// @Success 200 {object} util.Response{data=model.Resource}
// @Failure 404 {object} util.Response
// @Router /api/resources/{resourceId} [get]
func (ctrl *ResourceController) Get(c *gin.Context) {
	res, err := ctrl.ResourceService.Get(c.Param("resourceId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, res)
}

// Download godoc
// @Summary Download a resource
// @Description Bumps the download counter and redirects to the stored object.
// @Tags resources
// @Param resourceId path string true "Resource id"
// @Success 302
// @Failure 404 {object} util.Response
// @Router /api/resources/{resourceId}/download [get]
func (ctrl *ResourceController) Download(c *gin.Context) {
	res, err := ctrl.ResourceService.Download(c.Param("resourceId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, res.URL)
}

// Delete godoc
// @Summary Delete a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/resources/{resourceId} [delete]
func (ctrl *ResourceController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctrl.ResourceService.Delete(c.Request.Context(), claims.UserID, claims.Role, c.Param("resourceId")); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}
