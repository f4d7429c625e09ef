package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dispatch/pkg/logger"
)

const accountHeader = "X-Account-ID"

// Middleware ограничивает запросы отдельно для каждого аккаунта,
// анонимные запросы (healthcheck, ping) считаются по адресу клиента.
func Middleware(log handlerLogger, burst int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, kind := limitKey(r)
			if limiter.AllowKey(key) {
				next.ServeHTTP(w, r)
				return
			}

			handlerPath := r.URL.Path
			route := mux.CurrentRoute(r)
			if route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					handlerPath = template
				}
			}

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", handlerPath),
				logger.NewField("key", key),
			).Warn("rate limit exceeded")

			RejectedTotal.WithLabelValues(r.Method, handlerPath, kind).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(burst))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			_, err := w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded. Try again later."}`))
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}

func limitKey(r *http.Request) (string, string) {
	if account := r.Header.Get(accountHeader); account != "" {
		return "account:" + account, "account"
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host, "addr"
}
