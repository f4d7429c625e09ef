package rider_availability_put

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/dto"
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

	var availabilityDTO dto.Availability
	err := json.NewDecoder(r.Body).Decode(&availabilityDTO)
	if err != nil || availabilityDTO.IsAvailable == nil {
		response.Message(w, h.log, http.StatusBadRequest, "is_available is required")
		return
	}

	riderEntity, err := h.service.SetAvailability(r.Context(), caller, *availabilityDTO.IsAvailable)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Debug("rider availability changed",
		logger.NewField("rider_id", riderEntity.ID),
		logger.NewField("status", riderEntity.Status.String()),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromRider(riderEntity))
}
