package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/equipo46/horarios-api/pkg/errors"
)

// Envelope wraps every non-paginated response body. Success responses carry
// Data, failures carry Error; never both.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *apperrors.Error `json:"error,omitempty"`
}

// JSON sends a success envelope with the given status code.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Data: data})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent sends a 204 response with an empty body. The status is flushed
// immediately so it holds even when the handler is invoked outside a full
// engine run.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}

// Paginated sends a page body as-is: {total, count, offset, results}.
// List endpoints use this shape instead of the data envelope.
func Paginated(c *gin.Context, page interface{}) {
	c.JSON(http.StatusOK, page)
}

// Error converts err into the closed taxonomy and sends the error envelope
// at the mapped status.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// AbortError sends the error envelope and stops the middleware chain.
func AbortError(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.AbortWithStatusJSON(appErr.Status, Envelope{Error: appErr})
}
