package ping_get

import (
	"net/http"

	"dispatch/internal/dto"
	"dispatch/internal/handlers/rest/response"
)

// Handler отвечает pong без обращения к зависимостям, для liveness-проб.
type Handler struct {
	log  handlerLogger
	body dto.PingResponse
}

func New(log handlerLogger, service string) *Handler {
	return &Handler{
		log:  log,
		body: dto.PingResponse{Message: "pong", Service: service},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, h.log, http.StatusOK, h.body)
}
