package order_status_put

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/pkg/middlewares/identity"
	"dispatch/pkg/logger"
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

	var statusDTO dto.StatusUpdate
	err := json.NewDecoder(r.Body).Decode(&statusDTO)
	if err != nil {
		response.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	id := mux.Vars(r)["id"]
	result, err := h.service.UpdateStatus(r.Context(), caller, id, entities.OrderStatusType(statusDTO.Status))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	if !result.Assigned && result.Order.Status == entities.OrderReadyForPickup {
		h.log.Info("order waiting for rider",
			logger.NewField("order_id", id),
		)
	}

	response.JSON(w, h.log, http.StatusOK, dto.OrderDispatch{
		Order:    dto.FromOrder(result.Order),
		Assigned: result.Assigned,
	})
}
