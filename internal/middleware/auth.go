package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
	"go.uber.org/zap"
)

type TokenVerifier interface {
	Verify(token string, kind service.TokenKind) (*service.Claims, error)
}

// JWTAuth rejects requests without a valid, unrevoked access token. The
// denylist may be nil.
func JWTAuth(verifier TokenVerifier, denylist repository.TokenDenylist, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("Missing or malformed authorization header", zap.String("path", r.URL.Path))
				unauthorized(w, "Authorization token is required")
				return
			}

			claims, err := verifier.Verify(token, service.AccessToken)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, domain.ErrTokenExpired) {
					msg = "Token has expired"
				}
				unauthorized(w, msg)
				return
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					log.Error("Token denylist lookup failed", zap.Error(err))
					w.Header().Set("Retry-After", "5")
					writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Service temporarily unavailable"})
					return
				}
				if revoked {
					unauthorized(w, "Token has been revoked")
					return
				}
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="campus"`)
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
