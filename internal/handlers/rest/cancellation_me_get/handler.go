package cancellation_me_get

import (
	"net/http"

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

	if caller.Role != entities.RoleCustomer {
		response.Message(w, h.log, http.StatusForbidden, "only customers have a cancellation record")
		return
	}

	record, err := h.service.GetRecord(r.Context(), caller.AccountID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromCancellationRecord(record))
}
