package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the local dev frontends plus any configured origins.
// Preflight requests finish here, before auth middleware runs.
func CORS(extraOrigins []string, maxAge time.Duration) gin.HandlerFunc {
	origins := append([]string{}, defaultOrigins...)
	for _, o := range extraOrigins {
		if o != "" {
			origins = append(origins, o)
		}
	}
	if maxAge <= 0 {
		maxAge = 10 * time.Minute
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Content-Type", "Content-Length", "Authorization", "Accept", "Origin",
			"X-Requested-With", "X-Request-ID", "X-Visitor-ID",
		},
		ExposeHeaders:    []string{"X-Request-ID", "X-Visitor-ID"},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}
