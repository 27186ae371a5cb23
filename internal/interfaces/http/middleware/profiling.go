package middleware

import (
	"context"
	"strings"

	"github.com/bizify/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling label keys
const (
	ProfilingLabelRoute  = "route"
	ProfilingLabelMethod = "method"
	ProfilingLabelArea   = "area"
)

// Profiling attaches pprof labels for the matched route so Pyroscope can
// break CPU and allocation profiles down per endpoint. Health checks and
// unmatched paths are not labelled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || route == "/health" {
			c.Next()
			return
		}

		labels := map[string]string{
			ProfilingLabelRoute:  route,
			ProfilingLabelMethod: c.Request.Method,
			ProfilingLabelArea:   areaFromRoute(route),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// areaFromRoute returns the first segment after the API version:
// "/api/v1/invoices/:id/pdf" -> "invoices"
func areaFromRoute(route string) string {
	segments := strings.Split(strings.Trim(route, "/"), "/")
	for i, s := range segments {
		if s == "api" || (strings.HasPrefix(s, "v") && i > 0 && segments[i-1] == "api") {
			continue
		}
		if strings.HasPrefix(s, ":") {
			return ""
		}
		return s
	}
	return ""
}
