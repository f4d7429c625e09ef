package ride_post

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

	var rideCreateDTO dto.RideCreate
	err := json.NewDecoder(r.Body).Decode(&rideCreateDTO)
	if err != nil {
		response.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Create(r.Context(), caller, rideCreateDTO.ToDomain())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	if result.Ride.ScheduledTime != nil && !result.Assigned {
		h.log.Debug("ride scheduled",
			logger.NewField("ride_id", result.Ride.ID),
			logger.NewField("scheduled_time", *result.Ride.ScheduledTime),
		)
	}

	response.JSON(w, h.log, http.StatusCreated, dto.RideDispatch{
		Ride:     dto.FromRide(result.Ride),
		Assigned: result.Assigned,
	})
}
