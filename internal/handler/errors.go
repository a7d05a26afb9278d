package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"boardbill-be-svc/internal/service"
	"boardbill-be-svc/pkg/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Everything is terminal for the current action; nothing here retries.
func respondServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		utils.BadRequestResponse(c, message, err)
	case errors.Is(err, service.ErrForbidden):
		utils.ForbiddenResponse(c, message, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFoundResponse(c, message, err)
	case errors.Is(err, service.ErrInvalidTransition):
		utils.ConflictResponse(c, message, err)
	default:
		utils.InternalServerErrorResponse(c, message, err)
	}
}
