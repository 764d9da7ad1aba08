package controller

import (
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
	StorageService    *service.StorageService
}

func NewAssignmentController(assignmentService *service.AssignmentService, storageService *service.StorageService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService, StorageService: storageService}
}

// Create godoc
// @Summary Create an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.AssignmentCreateReq true "Assignment definition"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 403 {object} util.Response
// @Router /api/assignments [post]
func (ctrl *AssignmentController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.AssignmentCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	a, err := ctrl.AssignmentService.Create(claims.UserID, claims.Role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, a)
}

// List godoc
// @Summary List non-expired assignments
// @Tags assignments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/assignments [get]
func (ctrl *AssignmentController) List(c *gin.Context) {
	as, err := ctrl.AssignmentService.List()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, as)
}

// Get godoc
// @Summary Get an assignment by id
// @Tags assignments
// @Produce json
// @Param assignmentId path string true "Assignment id"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{assignmentId} [get]
func (ctrl *AssignmentController) Get(c *gin.Context) {
	a, err := ctrl.AssignmentService.Get(c.Param("assignmentId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, a)
}

// Update godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment id"
// @Param request body service.AssignmentUpdateReq true "Fields to replace"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{assignmentId} [put]
func (ctrl *AssignmentController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.AssignmentUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	a, err := ctrl.AssignmentService.Update(claims.UserID, claims.Role, c.Param("assignmentId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, a)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/assignments/{assignmentId} [delete]
func (ctrl *AssignmentController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctrl.AssignmentService.Delete(claims.UserID, claims.Role, c.Param("assignmentId")); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Submit godoc
// @Summary Submit an assignment answer
// @Description Multipart form. Accepts a text answer, an attached file, or both; one submission per student.
// @Tags assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment id"
// @Param content formData string false "Text answer"
// @Param file formData file false "Attachment"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 400 {object} util.Response
// @Router /api/assignments/{assignmentId}/submit [post]
func (ctrl *AssignmentController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	req := service.AssignmentSubmitReq{Content: c.PostForm("content")}

	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			util.BadRequest(c, "cannot read attachment")
			return
		}
		defer src.Close()

		stored, err := ctrl.StorageService.Upload(c.Request.Context(), src, file.Size,
			file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			handleServiceError(c, err)
			return
		}
		req.FileURL = stored.URL
	}

	a, err := ctrl.AssignmentService.Submit(claims.UserID, claims.Role, c.Param("assignmentId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, a)
}

// Grade godoc
// @Summary Grade an assignment submission
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment id"
// @Param studentId path int true "Student id"
// @Param request body service.GradeReq true "Marks and feedback"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{assignmentId}/submissions/{studentId}/grade [post]
func (ctrl *AssignmentController) Grade(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	studentID, err := util.ParseUint(c.Param("studentId"))
	if err != nil {
		util.BadRequest(c, "invalid student id")
		return
	}
	var req service.GradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	sub, err := ctrl.AssignmentService.Grade(claims.UserID, claims.Role, c.Param("assignmentId"), studentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, sub)
}
