package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP reports whether the connecting peer is loopback or in a
// private range. Forwarding headers are ignored since clients control them.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}
		parsed := net.ParseIP(host)
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// RequireAllow answers 404 to requests the allow func rejects, hiding the route.
func RequireAllow(allow AllowFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allow(c) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}
