package identity

import (
	"context"
	"net/http"

	"dispatch/internal/entities"
)

const (
	HeaderAccountID    = "X-Account-ID"
	HeaderAccountRole  = "X-Account-Role"
	HeaderAccountName  = "X-Account-Name"
	HeaderAccountPhone = "X-Account-Phone"
)

type callerKey struct{}

// Middleware доверяет заголовкам upstream шлюза авторизации, сама токены не проверяет.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := entities.Caller{
				AccountID: r.Header.Get(HeaderAccountID),
				Role:      entities.RoleType(r.Header.Get(HeaderAccountRole)),
				Name:      r.Header.Get(HeaderAccountName),
				Phone:     r.Header.Get(HeaderAccountPhone),
			}

			if caller.AccountID == "" || !caller.Role.Valid() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Not authenticated"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func WithCaller(ctx context.Context, caller entities.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

func FromContext(ctx context.Context) (entities.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(entities.Caller)
	return caller, ok
}
