package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip encoded request bodies before handlers bind
// them. Requests without a gzip Content-Encoding pass through untouched; a
// body that fails to open as gzip is rejected as a bad request.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(strings.ToLower(encoding), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer compressed.Close()

		c.Request.Body = io.NopCloser(reader)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
