package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dkarpov/taskman-server/internal/apierrors"
	"github.com/dkarpov/taskman-server/internal/logger"
	"github.com/dkarpov/taskman-server/internal/model"
)

// handleError translates any error into the API taxonomy. Unexpected errors
// are logged server-side and surfaced as a generic 500.
func handleError(c *gin.Context, log *logger.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, apiErr)
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		apiErr = apierrors.NewTaskNotFound()
		c.AbortWithStatusJSON(apiErr.Status, apiErr)
		return
	}

	log.Error("unhandled error", "error", err.Error(), "path", c.Request.URL.Path)
	apiErr = apierrors.NewInternal()
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
