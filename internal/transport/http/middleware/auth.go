package httpmw

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
)

type ctxKey string

const (
	ctxKeyToken ctxKey = "token"
	ctxKeyEmail ctxKey = "email"
)

// AuthMiddleware requires Bearer + X-User-Email. Token validation is
// delegated to the gateway; here the header pair only carries identity.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || len(auth) <= 7 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing bearer token"}`))
			return
		}

		email := strings.TrimSpace(r.Header.Get("X-User-Email"))
		if email == "" {
			http.Error(w, `{"error":"missing X-User-Email"}`, http.StatusUnauthorized)
			return
		}
		if _, err := mail.ParseAddress(email); err != nil {
			http.Error(w, `{"error":"invalid X-User-Email"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyToken, strings.TrimSpace(auth[7:]))
		ctx = context.WithValue(ctx, ctxKeyEmail, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func EmailFromCtx(ctx context.Context) string {
	if v := ctx.Value(ctxKeyEmail); v != nil {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
