package controller

import (
	"errors"

	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"
	"educonnect_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// Create godoc
// @Summary Create a test
// @Description Creates a test with its questions. The stored status is always active.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.TestCreateReq true "Test definition"
// @Success 201 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/tests [post]
func (ctrl *TestController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.TestCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	test, err := ctrl.TestService.Create(c.Request.Context(), claims.UserID, claims.Role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, test)
}

// List godoc
// @Summary List non-expired tests
// @Tags tests
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Test}
// @Router /api/tests [get]
func (ctrl *TestController) List(c *gin.Context) {
	tests, err := ctrl.TestService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, tests)
}

// Get godoc
// @Summary Get a test by id
// @Tags tests
// @Produce json
// @Param testId path string true "Test id"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 404 {object} util.Response
// @Router /api/tests/{testId} [get]
func (ctrl *TestController) Get(c *gin.Context) {
	test, err := ctrl.TestService.Get(c.Param("testId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, test)
}

// Update godoc
// @Summary Update a test
// @Description Author only. Provided fields replace stored values wholesale, including the question set.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "Test id"
// @Param request body service.TestUpdateReq true "Fields to replace"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{testId} [put]
func (ctrl *TestController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.TestUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	test, err := ctrl.TestService.Update(c.Request.Context(), claims.UserID, claims.Role, c.Param("testId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, test)
}

// Delete godoc
// @Summary Delete a test
// @Description Author only. Removes the test with its questions and submissions.
// @Tags tests
// @Produce json
// @Security BearerAuth
// @Param testId path string true "Test id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{testId} [delete]
func (ctrl *TestController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctrl.TestService.Delete(c.Request.Context(), claims.UserID, claims.Role, c.Param("testId")); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Submit godoc
// @Summary Submit answers for a test
// @Description One attempt per student. The score is computed server side on submission.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "Test id"
// @Param request body service.TestSubmitReq true "Answers and time taken"
// @Success 200 {object} util.Response{data=model.Test}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{testId}/submit [post]
func (ctrl *TestController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.TestSubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	test, err := ctrl.TestService.Submit(claims.UserID, claims.Role, c.Param("testId"), &req)
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, util.ErrTestAlreadySubmitted):
			outcome = "duplicate"
		case util.IsValidationError(err):
			outcome = "invalid"
		}
		monitoring.SubmissionCounter.WithLabelValues(outcome).Inc()
		handleServiceError(c, err)
		return
	}
	monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
	util.Success(c, test)
}

// Grade godoc
// @Summary Manually grade a submission
// @Description Test author only. Sets marks and feedback; the auto score is untouched.
// @Tags tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param testId path string true "Test id"
// @Param studentId path int true "Student id"
// @Param request body service.GradeReq true "Marks and feedback"
// @Success 200 {object} util.Response{data=model.TestSubmission}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/tests/{testId}/submissions/{studentId}/grade [post]
func (ctrl *TestController) Grade(c *gin.Context) {
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
	sub, err := ctrl.TestService.Grade(claims.UserID, claims.Role, c.Param("testId"), studentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, sub)
}
