package handler

import (
	"errors"
	"net/http"

	"backend/internal/repository"
	"backend/internal/vision"
	"backend/internal/workflow"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidState), errors.Is(err, repository.ErrNotPending):
		status = http.StatusConflict
	case errors.Is(err, vision.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, workflow.ErrInconsistent):
		status = http.StatusInternalServerError
	}
	c.JSON(status, response.Error(status, err.Error()))
}
