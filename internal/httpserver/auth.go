package httpserver

import (
	"net/http"
	"strings"

	"github.com/citeurl-go/citeurl/internal/web/auth"
	"github.com/citeurl-go/citeurl/internal/web/router"
)

// requireAdmin guards /admin/reload. Two credential forms are accepted:
// an "Authorization: Bearer <jwt>" token with role "admin" (HS256, verified
// by internal/web/auth.AuthService, same exact-alg check the teacher uses),
// or an "X-Admin-Key" header checked against the bcrypt hash configured at
// startup (internal/web/auth.CheckAdminKey) rather than a plaintext secret.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("X-Admin-Key"); key != "" {
			if s.cfg.AdminTokenHash != "" && auth.CheckAdminKey(key, s.cfg.AdminTokenHash) {
				next(w, r)
				return
			}
			router.Unauthorized(w, "invalid admin key")
			return
		}

		bearer := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(bearer, "Bearer ")
		if !ok || token == "" {
			router.Unauthorized(w, "missing admin credentials")
			return
		}

		claims, err := s.auth.ValidateToken(token)
		if err != nil {
			router.Unauthorized(w, "invalid token")
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			router.Forbidden(w, "admin role required")
			return
		}
		next(w, r)
	}
}
