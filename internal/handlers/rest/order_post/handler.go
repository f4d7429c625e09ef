package order_post

import (
	"encoding/json"
	"net/http"

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

	var orderCreateDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		response.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	orderEntity, err := h.service.Create(r.Context(), caller, orderCreateDTO.ToDomain())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.FromOrder(orderEntity))
}
