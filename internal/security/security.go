package security

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"

	"github.com/ZanzyTHEbar/function-o-meter/internal/errors"
)

// DefaultMaxBodyBytes fits a 50 item simulation batch or 64 responses
// with plenty to spare.
const DefaultMaxBodyBytes int64 = 1 << 20

func reject(c *gin.Context, status int, builder *errbuilder.ErrBuilder) {
	_ = c.Error(errors.NewAppError(builder, errors.CategoryValidation, status))
	c.Abort()
}

// RequireJSON rejects request bodies that declare a content type other than
// JSON. Requests without a Content-Type header are let through.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if contentType != "" {
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || mediaType != "application/json" {
				reject(c, http.StatusUnsupportedMediaType, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("unsupported content type %q", contentType)))
				return
			}
		}

		c.Next()
	}
}

// BodyLimit caps request bodies at max bytes. Declared lengths over the cap
// are refused up front; undeclared ones fail while the handler reads.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			reject(c, http.StatusRequestEntityTooLarge, errbuilder.New().
				WithCode(errbuilder.CodeResourceExhausted).
				WithMsg(fmt.Sprintf("request body exceeds %d bytes", max)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
