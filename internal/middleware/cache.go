package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// PrivateCacheControl marks responses as privately cacheable for the given
// lifetime. Signed asset responses use this: the URL itself expires, so
// shared caches must not hold the body.
func PrivateCacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}
