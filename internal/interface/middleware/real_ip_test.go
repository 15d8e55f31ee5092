package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRealIPHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		header string
		value  string
		wantIP string
	}{
		{"cloudflare", "CF-Connecting-IP", "203.0.113.9", "203.0.113.9"},
		{"forwarded left-most", "X-Forwarded-For", "10.0.0.4, 203.0.113.9", "10.0.0.4"},
		{"nginx", "X-Real-IP", " 192.168.1.20 ", "192.168.1.20"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotIP string
			r := gin.New()
			r.Use(RealIP())
			r.GET("/", func(c *gin.Context) { gotIP = c.GetString("real_ip") })
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(tc.header, tc.value)
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.wantIP, gotIP)
		})
	}
}

func TestAllowPrivateIPUsesPeerAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allow := AllowPrivateIP()

	cases := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       bool
	}{
		{"loopback peer", "127.0.0.1:5000", "", true},
		{"private peer", "10.1.2.3:5000", "203.0.113.9", true},
		{"ipv6 loopback", "[::1]:5000", "", true},
		{"public peer", "203.0.113.9:5000", "", false},
		{"public peer spoofing loopback", "192.0.2.1:1234", "127.0.0.1", false},
		{"garbage", "not-an-ip", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got bool
			r := gin.New()
			r.Use(RealIP())
			r.GET("/", func(c *gin.Context) { got = allow(c) })
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
				req.Header.Set("X-Real-IP", tc.forwarded)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, 0, KeyByUserID(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
