package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"dispatch/pkg/logger"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	log            handlerLogger
	isShuttingDown *atomic.Bool
	dependencies   map[string]Dependency
}

func New(log handlerLogger, isShuttingDown *atomic.Bool, dependencies map[string]Dependency) *Handler {
	return &Handler{
		log:            log,
		isShuttingDown: isShuttingDown,
		dependencies:   dependencies,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	for name, dep := range h.dependencies {
		if err := dep.Ping(ctx); err != nil {
			h.log.Warn("healthcheck dependency unavailable",
				logger.NewField("dependency", name),
				logger.NewField("error", err),
			)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
