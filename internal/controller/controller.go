package controller

import (
	"errors"

	"educonnect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError translates service errors into the response envelope.
// Anything unrecognized is logged and rendered as a 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case util.IsValidationError(err):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(c)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c)
	case errors.Is(err, util.ErrTestNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrAssignmentNotFound),
		errors.Is(err, util.ErrPollNotFound),
		errors.Is(err, util.ErrPostNotFound),
		errors.Is(err, util.ErrResourceNotFound):
		util.NotFound(c)
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrTestAlreadySubmitted),
		errors.Is(err, util.ErrAlreadySubmitted),
		errors.Is(err, util.ErrAlreadyVoted):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
