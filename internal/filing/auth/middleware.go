package auth

import (
	"context"
	"net/http"
	"strings"
)

// protectedRoutes lists, per HTTP method, the path prefixes that need a
// token. The validate endpoint and /metrics stay open.
var protectedRoutes = map[string][]string{
	http.MethodGet: {"/v1/submissions/"},
}

func HTTPMiddleware(next http.Handler, jwtSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtectedRequest(r) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := bearer(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isProtectedRequest(r *http.Request) bool {
	for _, prefix := range protectedRoutes[r.Method] {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}
