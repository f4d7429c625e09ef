package ride_cancel_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

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

	// тело необязательное, причина отмены может отсутствовать
	var cancelDTO dto.RideCancel
	err := json.NewDecoder(r.Body).Decode(&cancelDTO)
	if err != nil && !errors.Is(err, io.EOF) {
		response.Message(w, h.log, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.CancelRide(r.Context(), caller, mux.Vars(r)["id"], cancelDTO.Reason)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("ride cancelled",
		logger.NewField("ride_id", result.Ride.ID),
		logger.NewField("consequence", result.Outcome.Consequence.String()),
	)

	response.JSON(w, h.log, http.StatusOK, dto.FromRideCancellation(result))
}
