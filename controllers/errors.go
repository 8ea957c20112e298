package controllers

import (
	"quickbite/pkg/resp"
	"quickbite/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service sentinels onto status codes; anything
// unrecognized is surfaced raw as a 500, per the no-normalization policy.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case err == services.ErrNotFound:
		resp.NotFound(c, err.Error())
	case err == services.ErrForbidden:
		resp.Forbidden(c, err.Error())
	case err == services.ErrInvalidCredential:
		resp.Unauthorized(c, err.Error())
	case err == services.ErrStaffPending, err == services.ErrStaffRejected:
		resp.Forbidden(c, err.Error())
	case err == services.ErrNotPending,
		err == services.ErrInvalidTransition,
		err == services.ErrDuplicateRating,
		err == services.ErrNotClaimed:
		resp.Conflict(c, err.Error())
	case err == services.ErrEmailTaken,
		err == services.ErrNoStagedPassword,
		err == services.ErrSlotFull,
		err == services.ErrUnknownSlot,
		services.IsBadInput(err):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
