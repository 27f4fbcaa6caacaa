package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gartstein/efiling/internal/filing/rpc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	validSecret   = "test-secret"
	invalidSecret = "wrong-secret"
	userID        = "presenter-1"
)

func signedToken(t *testing.T, secret string, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": expiresAt.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthInterceptor(t *testing.T) {
	tests := []struct {
		name       string
		fullMethod string
		token      string
		wantCode   codes.Code
	}{
		{"submit with valid token", rpc.SubmitMethod, signedToken(t, validSecret, time.Now().Add(time.Hour)), codes.OK},
		{"submit with foreign token", rpc.SubmitMethod, signedToken(t, invalidSecret, time.Now().Add(time.Hour)), codes.Unauthenticated},
		{"submit with expired token", rpc.SubmitMethod, signedToken(t, validSecret, time.Now().Add(-time.Hour)), codes.Unauthenticated},
		{"submit without metadata", rpc.SubmitMethod, "", codes.Unauthenticated},
		{"status lookup is protected", rpc.GetSubmissionMethod, "", codes.Unauthenticated},
		{"health check is open", "/grpc.health.v1.Health/Check", "", codes.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unary := NewAuthInterceptor(validSecret).Unary()

			ctx := context.Background()
			if tt.token != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", "Bearer "+tt.token))
			}

			handler := func(ctx context.Context, _ any) (any, error) {
				if tt.token != "" {
					sub, ok := Subject(ctx)
					if !ok || sub != userID {
						return nil, status.Error(codes.Unauthenticated, "claims not in context")
					}
				}
				return "response", nil
			}

			resp, err := unary(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.fullMethod}, handler)
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, "response", resp)
			}
		})
	}
}

func TestExtractTokenFromMetadata(t *testing.T) {
	tests := []struct {
		name      string
		md        metadata.MD
		wantToken string
		wantCode  codes.Code
	}{
		{"valid authorization header", metadata.Pairs("authorization", "Bearer valid-token"), "valid-token", codes.OK},
		{"missing authorization header", metadata.MD{}, "", codes.Unauthenticated},
		{"malformed authorization header", metadata.Pairs("authorization", "Basic valid-token"), "", codes.Unauthenticated},
		{"empty bearer token", metadata.Pairs("authorization", "Bearer "), "", codes.Unauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := extractTokenFromMetadata(tt.md)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestValidateToken(t *testing.T) {
	valid := signedToken(t, validSecret, time.Now().Add(time.Hour))

	claims, err := validateToken(valid, validSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims["sub"])

	_, err = validateToken(valid, invalidSecret)
	assert.Error(t, err)

	_, err = validateToken(signedToken(t, validSecret, time.Now().Add(-time.Hour)), validSecret)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": userID})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = validateToken(unsigned, validSecret)
	assert.Error(t, err)
}

func TestHTTPMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sub, ok := Subject(r.Context()); ok {
			w.Header().Set("X-Subject", sub)
		}
		w.WriteHeader(http.StatusOK)
	})
	h := HTTPMiddleware(next, validSecret)
	valid := signedToken(t, validSecret, time.Now().Add(time.Hour))

	tests := []struct {
		name     string
		method   string
		path     string
		header   string
		wantCode int
	}{
		{"status lookup with token", http.MethodGet, "/v1/submissions/abc", "Bearer " + valid, http.StatusOK},
		{"status lookup without token", http.MethodGet, "/v1/submissions/abc", "", http.StatusUnauthorized},
		{"status lookup with bad token", http.MethodGet, "/v1/submissions/abc", "Bearer garbage", http.StatusUnauthorized},
		{"validate is open", http.MethodPost, "/v1/filings/validate", "", http.StatusOK},
		{"metrics are open", http.MethodGet, "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK && tt.header != "" {
				assert.Equal(t, userID, rec.Header().Get("X-Subject"))
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(userID, validSecret, time.Hour)
	require.NoError(t, err)

	claims, err := validateToken(token, validSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims["sub"])
}

func TestBearerCredentials(t *testing.T) {
	creds := BearerCredentials("tok", false)
	md, err := creds.GetRequestMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", md["authorization"])
	assert.False(t, creds.RequireTransportSecurity())
}

func TestWithSubject(t *testing.T) {
	_, ok := Subject(context.Background())
	assert.False(t, ok)

	sub, ok := Subject(WithSubject(context.Background(), "presenter-1"))
	assert.True(t, ok)
	assert.Equal(t, "presenter-1", sub)
}
