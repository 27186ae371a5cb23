package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAreaFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/invoices/:id/pdf": "invoices",
		"/api/v1/customers":        "customers",
		"/api/v1/auth/token":       "auth",
		"/health":                  "health",
		"/api/v1/:id":              "",
		"":                         "",
	}
	for route, want := range tests {
		assert.Equal(t, want, areaFromRoute(route), route)
	}
}

func TestProfiling_AttachesRouteLabels(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(true))

	var route, area string
	router.GET("/api/v1/invoices/:id", func(c *gin.Context) {
		route, _ = pprof.Label(c.Request.Context(), ProfilingLabelRoute)
		area, _ = pprof.Label(c.Request.Context(), ProfilingLabelArea)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/invoices/7", nil))

	assert.Equal(t, "/api/v1/invoices/:id", route)
	assert.Equal(t, "invoices", area)
}

func TestProfiling_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(false))

	var labelled bool
	router.GET("/api/v1/customers", func(c *gin.Context) {
		_, labelled = pprof.Label(c.Request.Context(), ProfilingLabelRoute)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/customers", nil))
	assert.False(t, labelled)
}
