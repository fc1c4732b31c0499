package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/equipo46/horarios-api/pkg/errors"
	"github.com/equipo46/horarios-api/pkg/response"
)

// RequireJSON rejects write requests whose content type is not JSON, before
// any body parsing happens. GET and DELETE carry no body and pass through.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			contentType := c.ContentType()
			if !strings.HasPrefix(contentType, "application/json") {
				response.AbortError(c, apperrors.Clone(apperrors.ErrUnsupportedMedia, ""))
				return
			}
		}
		c.Next()
	}
}
