package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows the configured frontend origin. An empty value or "*" allows
// any origin; a comma separated list is accepted too.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if allowedOrigin != "" && allowedOrigin != "*" {
		origins = origins[:0]
		for _, o := range strings.Split(allowedOrigin, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
