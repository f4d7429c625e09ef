package graceful_shutdown

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"dispatch/pkg/logger"
)

// RetryAfter подсказка клиенту, через сколько повторить запрос на другой инстанс.
const RetryAfter = 5 * time.Second

// Middleware отклоняет новые запросы, когда сервер уже гасится и ongoingCtx отменен.
// Запросы, принятые до отмены, доживают свой обычный путь.
func Middleware(log handlerLogger, isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() == nil || !isShuttingDown.Load() {
				next.ServeHTTP(w, r)
				return
			}

			log.Warn("request rejected during shutdown",
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Connection", "close")
			w.Header().Set("Retry-After", strconv.Itoa(int(RetryAfter.Seconds())))
			w.WriteHeader(http.StatusServiceUnavailable)

			_, err := w.Write([]byte(`{"message":"Service is shutting down"}`))
			if err != nil {
				log.Error("failed to write shutdown response", logger.NewField("error", err))
			}
		})
	}
}
