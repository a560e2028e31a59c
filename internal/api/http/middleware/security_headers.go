package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

const cdnOrigin = "https://cdn.jsdelivr.net"

// SecurityHeaders sets the baseline browser hardening headers. imageOrigin
// is the asset host project images are loaded from.
func SecurityHeaders(imageOrigin string) gin.HandlerFunc {
	csp := fmt.Sprintf(
		"default-src 'self'; "+
			"img-src 'self' %[1]s data:; "+
			"style-src 'self' 'unsafe-inline' %[2]s; "+
			"script-src 'self' %[2]s; "+
			"font-src 'self' %[2]s data:;",
		imageOrigin, cdnOrigin,
	)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		for key, value := range map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
			"Referrer-Policy":        "strict-origin-when-cross-origin",
		} {
			if h.Get(key) == "" {
				h.Set(key, value)
			}
		}
		h.Set("Content-Security-Policy", csp)
		c.Next()
	}
}
