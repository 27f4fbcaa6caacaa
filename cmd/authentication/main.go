// Mock presenter authentication service. It issues JWTs accepted by the
// filing gateway so cmd/efile and local tests can authenticate.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gartstein/efiling/internal/filing/auth"
	"go.uber.org/zap"
)

const (
	defaultPort      = "8081"
	defaultSecret    = "jwt_secret"
	defaultTTL       = 24 * time.Hour
	defaultPresenter = "presenter-1"
)

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type tokenHandler struct {
	secret string
	ttl    time.Duration
	logger *zap.Logger
}

// ServeHTTP issues a token for the presenter named by the "presenter" query
// parameter.
func (h tokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	presenter := r.URL.Query().Get("presenter")
	if presenter == "" {
		presenter = defaultPresenter
	}

	token, err := auth.GenerateToken(presenter, h.secret, h.ttl)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := TokenResponse{Token: token, ExpiresAt: time.Now().Add(h.ttl).UTC()}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode token", zap.Error(err))
	}
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	secret := getenv("JWT_SECRET", defaultSecret)
	port := getenv("AUTH_PORT", defaultPort)
	ttl := defaultTTL
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Fatal("invalid TOKEN_TTL", zap.Error(err))
		}
		ttl = d
	}

	mux := http.NewServeMux()
	mux.Handle("/token", tokenHandler{secret: secret, ttl: ttl, logger: logger.Named("auth_service")})

	server := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	logger.Info("Authentication service running", zap.String("port", port))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Authentication service stopped", zap.Error(err))
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
