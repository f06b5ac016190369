package middleware

import (
	"net/http"
	"strings"

	"library-catalog/internal/utils"
)

// JSONMiddleware rejects POST and PUT requests whose body is not declared as
// JSON with 415, before any handler runs.
func JSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				utils.JSONError(w, "expected content type application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
