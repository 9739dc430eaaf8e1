package auth

import (
	"encoding/json"
	"net/http"

	"github.com/anveshk/nestmark/internal/auth/context/usercontext"
	"github.com/anveshk/nestmark/internal/logging"
	"github.com/anveshk/nestmark/internal/models"
)

type UserMiddleware struct {
	SessionService *models.SessionService
}

// SetUser resolves the session cookie to a user and stores it on the request
// context. Resolution failures leave the context without a user; RequireUser
// decides what that means per route.
func (umw UserMiddleware) SetUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := readCookie(r, CookieSession)
		if err != nil || token == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, err := umw.SessionService.User(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := usercontext.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (umw UserMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := usercontext.User(r.Context())
		if user == nil {
			logging.Logger.Infow("unauthorized request", "remoteAddr", r.RemoteAddr, "path", r.URL.Path, "method", r.Method)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"errorCode":    "UNAUTHORIZED",
				"errorMessage": "Authentication required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
