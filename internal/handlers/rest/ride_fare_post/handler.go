package ride_fare_post

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

	var fareDTO dto.FareRequest
	err := json.NewDecoder(r.Body).Decode(&fareDTO)
	if err != nil {
		response.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.CalculateFare(
		r.Context(),
		caller,
		fareDTO.Pickup.ToDomain(),
		fareDTO.Dropoff.ToDomain(),
		fareDTO.StopsToDomain(),
	)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromFareQuote(quote))
}
