package middleware

import (
	"net/http"
	"strings"

	"github.com/rahul-nakum14/formcraft/internal/ctxkeys"
	"github.com/rahul-nakum14/formcraft/internal/service"
)

// AuthMiddleware checks for a JWT token and adds user + subscription to context if valid.
// Tokens are accepted from the Authorization header (Bearer) or the auth_token cookie.
func AuthMiddleware(authService *service.AuthService, subscriptionService *service.SubscriptionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				cookie, err := r.Cookie("auth_token")
				if err != nil {
					// No credentials, continue without auth
					next.ServeHTTP(w, r)
					return
				}
				token = cookie.Value
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				// Invalid token, clear cookie and continue
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.ByID(userID)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Security: never expose the password hash through context
			user.PasswordHash = ""

			subscription, err := subscriptionService.Subscription(userID)
			if err != nil {
				// Subscription not found - something wrong, clear cookie
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithSubscription(ctx, subscription)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request carries a valid authenticated user.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
