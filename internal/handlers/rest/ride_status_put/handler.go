package ride_status_put

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dispatch/internal/dto"
	"dispatch/internal/entities"
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

	var statusDTO dto.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		response.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	rideEntity, err := h.service.UpdateStatus(
		r.Context(),
		caller,
		mux.Vars(r)["id"],
		entities.RideStatusType(statusDTO.Status),
	)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromRide(rideEntity))
}
