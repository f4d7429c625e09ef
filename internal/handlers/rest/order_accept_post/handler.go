package order_accept_post

import (
	"net/http"

	"github.com/gorilla/mux"

	"dispatch/internal/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/pkg/middlewares/identity"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		response.Message(w, h.log, http.StatusUnauthorized, "Not authenticated")
		return
	}

	orderEntity, err := h.service.AcceptDelivery(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(orderEntity))
}
