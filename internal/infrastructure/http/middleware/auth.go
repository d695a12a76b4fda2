package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/culinamind/backend/internal/infrastructure/security"
	"go.uber.org/zap"
)

type contextKey string

const (
	claimsKey    contextKey = "claims"
	requestIDKey contextKey = "request_id"
)

// Authenticator validates bearer tokens and stores the claims in the
// request context.
type Authenticator struct {
	tokens *security.TokenService
	logger *zap.Logger
}

// NewAuthenticator creates the JWT middleware.
func NewAuthenticator(tokens *security.TokenService, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, logger: logger.Named("auth")}
}

// RequireAuth rejects requests without a valid bearer token.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "Authorization header required")
			return
		}

		claims, err := a.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.logger.Debug("token rejected", zap.Error(err))
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"status":"error","message":"` + message + `"}`))
}

// ClaimsFromContext returns the authenticated token claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.Claims)
	return claims, ok
}

// UserIDFromContext returns the authenticated numeric user id.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// UserKeyFromContext returns the user id as the string key used by the
// context store.
func UserKeyFromContext(ctx context.Context) (string, bool) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", false
	}
	return strconv.FormatUint(uint64(id), 10), true
}

func withRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id set by the RequestID
// middleware.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
