package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveDocs(cfg SwaggerConfig, auth gin.HandlerFunc, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg, auth), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// bearerOnly stands in for the JWT middleware
func bearerOnly(c *gin.Context) {
	if c.GetHeader("Authorization") != "Bearer good" {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
}

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        SwaggerConfig
		remoteAddr string
		header     http.Header
		want       int
	}{
		{
			name: "disabled answers not found",
			cfg:  SwaggerConfig{Enabled: false},
			want: http.StatusNotFound,
		},
		{
			name: "enabled without restrictions",
			cfg:  SwaggerConfig{Enabled: true},
			want: http.StatusOK,
		},
		{
			name:       "allow list accepts an exact address",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}},
			remoteAddr: "127.0.0.1:5000",
			want:       http.StatusOK,
		},
		{
			name:       "allow list accepts a CIDR member",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}},
			remoteAddr: "10.20.30.40:5000",
			want:       http.StatusOK,
		},
		{
			name:       "allow list rejects other addresses",
			cfg:        SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "127.0.0.1"}},
			remoteAddr: "192.168.1.9:5000",
			want:       http.StatusForbidden,
		},
		{
			name: "auth required without token",
			cfg:  SwaggerConfig{Enabled: true, RequireAuth: true},
			want: http.StatusUnauthorized,
		},
		{
			name:   "auth required with token",
			cfg:    SwaggerConfig{Enabled: true, RequireAuth: true},
			header: http.Header{"Authorization": []string{"Bearer good"}},
			want:   http.StatusOK,
		},
		{
			name:       "allow list is checked before auth",
			cfg:        SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"127.0.0.1"}},
			remoteAddr: "192.168.1.9:5000",
			header:     http.Header{"Authorization": []string{"Bearer good"}},
			want:       http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveDocs(tt.cfg, bearerOnly, tt.remoteAddr, tt.header)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestSwaggerProtection_DisabledUsesErrorEnvelope(t *testing.T) {
	w := serveDocs(SwaggerConfig{}, nil, "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	assert.Contains(t, w.Body.String(), "API documentation is not available")
}

func TestIPAllowList(t *testing.T) {
	list := newIPAllowList([]string{" 192.168.0.1 ", "172.16.0.0/12", "not-an-ip", "bad/cidr"})

	assert.True(t, list.allows(net.ParseIP("192.168.0.1")))
	assert.True(t, list.allows(net.ParseIP("172.20.1.1")))
	assert.False(t, list.allows(net.ParseIP("172.32.0.1")))
	assert.False(t, list.allows(nil))
	assert.Len(t, list.ips, 1)
	assert.Len(t, list.nets, 1)
}
