package controller

import (
	"educonnect_backend/internal/service"
	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PollController struct {
	PollService *service.PollService
}

func NewPollController(pollService *service.PollService) *PollController {
	return &PollController{PollService: pollService}
}

// Create godoc
// @Summary Create a poll
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PollCreateReq true "Poll definition"
// @Success 201 {object} util.Response{data=model.Poll}
// @Failure 403 {object} util.Response
// @Router /api/polls [post]
func (ctrl *PollController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.PollCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PollService.Create(c.Request.Context(), claims.UserID, claims.Role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, p)
}

// List godoc
// @Summary List non-expired polls
// @Tags polls
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Poll}
// @Router /api/polls [get]
func (ctrl *PollController) List(c *gin.Context) {
	polls, err := ctrl.PollService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, polls)
}

// Get godoc
// @Summary Get a poll by id
// @Tags polls
// @Produce json
// @Param pollId path string true "Poll id"
// @Success 200 {object} util.Response{data=model.Poll}
// @Failure 404 {object} util.Response
// @Router /api/polls/{pollId} [get]
func (ctrl *PollController) Get(c *gin.Context) {
	p, err := ctrl.PollService.Get(c.Param("pollId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, p)
}

// Update godoc
// @Summary Update a poll
// @Description Author only. Replacing the option list resets the tallies.
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pollId path string true "Poll id"
// @Param request body service.PollUpdateReq true "Fields to replace"
// @Success 200 {object} util.Response{data=model.Poll}
// @Failure 403 {object} util.Response
// @Router /api/polls/{pollId} [put]
func (ctrl *PollController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.PollUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PollService.Update(c.Request.Context(), claims.UserID, claims.Role, c.Param("pollId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, p)
}

// Delete godoc
// @Summary Delete a poll
// @Tags polls
// @Produce json
// @Security BearerAuth
// @Param pollId path string true "Poll id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/polls/{pollId} [delete]
func (ctrl *PollController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctrl.PollService.Delete(c.Request.Context(), claims.UserID, claims.Role, c.Param("pollId")); err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, nil)
}

// Vote godoc
// @Summary Vote in a poll
// @Description One ballot per user. Single-type polls accept exactly one option index.
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pollId path string true "Poll id"
// @Param request body service.VoteReq true "Selected option indexes"
// @Success 200 {object} util.Response{data=model.Poll}
// @Failure 400 {object} util.Response
// @Router /api/polls/{pollId}/vote [post]
func (ctrl *PollController) Vote(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PollService.Vote(c.Request.Context(), claims.UserID, claims.Role, c.Param("pollId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, p)
}
