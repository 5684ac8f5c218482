package middleware

import (
	"mime"
	"net/http"

	"scholarship-portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultMaxRequestSize caps JSON bodies.
	DefaultMaxRequestSize = 1 << 20

	// multipartOverhead is the room left for form boundaries and headers
	// around an uploaded image.
	multipartOverhead = 1 << 20
)

// BodyLimits are the per-request body caps, chosen by content type.
type BodyLimits struct {
	JSON      int64
	Multipart int64
}

// UploadBodyLimits derives limits that let an image of up to maxImageBytes
// through in a multipart form while keeping JSON bodies small.
func UploadBodyLimits(maxImageBytes int64) BodyLimits {
	return BodyLimits{
		JSON:      DefaultMaxRequestSize,
		Multipart: maxImageBytes + multipartOverhead,
	}
}

// RequestSizeLimitMiddleware rejects bodies over the limit for their content
// type with 413, and caps the reader for bodies of unknown length.
func RequestSizeLimitMiddleware(limits BodyLimits) gin.HandlerFunc {
	if limits.JSON <= 0 {
		limits.JSON = DefaultMaxRequestSize
	}
	if limits.Multipart < limits.JSON {
		limits.Multipart = limits.JSON
	}

	return func(c *gin.Context) {
		maxSize := limits.JSON
		if mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type")); err == nil && mediaType == "multipart/form-data" {
			maxSize = limits.Multipart
		}

		if c.Request.ContentLength > maxSize {
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}
