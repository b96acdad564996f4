package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"claynova-backend/internal/models"
)

// writeError maps the error taxonomy onto HTTP statuses. Generation
// errors never reach here: workflows always recover from them.
func writeError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation failed",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
		return
	}

	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "product not found",
			Message: notFoundErr.Error(),
		})
		return
	}

	var storageErr *models.StorageError
	if errors.As(err, &storageErr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "storage operation failed",
			Message: storageErr.Error(),
		})
		return
	}

	var repoErr *models.RepositoryError
	if errors.As(err, &repoErr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database operation failed",
			Message: repoErr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal error",
		Message: err.Error(),
	})
}
