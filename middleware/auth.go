package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/utils"
)

type ctxKey string

const CtxClaimsKey ctxKey = "admin_claims"

// AdminAuth guards the bearer-authenticated admin API. It rejects before the
// wrapped handler runs, so no persistence call happens on a bad token.
type AdminAuth struct {
	Secret string
}

func NewAdminAuth(secret string) *AdminAuth {
	return &AdminAuth{Secret: secret}
}

func (a *AdminAuth) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			unauthorized(w, "Missing authorization header")
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			unauthorized(w, "Invalid authorization header")
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			unauthorized(w, "Invalid authorization header")
			return
		}

		claims, err := utils.VerifyAdminToken(token, a.Secret)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.Role != models.RoleAdmin {
			unauthorized(w, "Access denied")
			return
		}

		ctx := context.WithValue(r.Context(), CtxClaimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// ClaimsFromContext returns the verified claims, nil outside admin routes.
func ClaimsFromContext(ctx context.Context) *utils.AdminClaims {
	claims, _ := ctx.Value(CtxClaimsKey).(*utils.AdminClaims)
	return claims
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": msg,
	})
}
