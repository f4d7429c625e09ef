package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dispatch/internal/dto"
	"dispatch/internal/service/cancellation"
	"dispatch/internal/service/order"
	"dispatch/internal/service/ride"
	"dispatch/internal/service/rider"
	"dispatch/internal/service/subscription"
	"dispatch/pkg/logger"
	"dispatch/pkg/tx"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

func Message(w http.ResponseWriter, log errorLogger, status int, message string) {
	JSON(w, log, status, dto.ErrorResponse{Message: message})
}

// Error переводит доменную ошибку в HTTP ответ. Неизвестные ошибки логируются
// и уходят клиенту как 500 без деталей.
func Error(w http.ResponseWriter, log errorLogger, err error) {
	var suspension *cancellation.SuspensionError
	if errors.As(err, &suspension) {
		JSON(w, log, http.StatusForbidden, dto.SuspensionResponse{
			Message:        "Account suspended",
			Reason:         suspension.Reason,
			SuspendedUntil: suspension.Until.UTC().Format(time.RFC3339),
		})
		return
	}

	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.NewField("error", err))
		Message(w, log, status, http.StatusText(status))
		return
	}

	Message(w, log, status, err.Error())
}

func Status(err error) int {
	switch {
	case errors.Is(err, order.ErrInvalidOrderID),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidItems),
		errors.Is(err, order.ErrInvalidDeliveryAddress),
		errors.Is(err, order.ErrInvalidDeliveryFee),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidRestaurantID),
		errors.Is(err, ride.ErrInvalidInput),
		errors.Is(err, rider.ErrInvalidLocation),
		errors.Is(err, rider.ErrInvalidServiceMode),
		errors.Is(err, cancellation.ErrInvalidCustomerID),
		errors.Is(err, subscription.ErrUnknownChannel):
		return http.StatusBadRequest

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, ride.ErrForbidden),
		errors.Is(err, rider.ErrForbidden),
		errors.Is(err, cancellation.ErrSuspensionActive),
		errors.Is(err, subscription.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrRestaurantNotFound),
		errors.Is(err, ride.ErrRideNotFound),
		errors.Is(err, rider.ErrRiderNotFound):
		return http.StatusNotFound

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrRiderNotAssigned),
		errors.Is(err, order.ErrRestaurantClosed),
		errors.Is(err, ride.ErrInvalidTransition),
		errors.Is(err, ride.ErrRideAlreadyAssigned),
		errors.Is(err, ride.ErrRideNotDue),
		errors.Is(err, ride.ErrWrongServiceMode),
		errors.Is(err, ride.ErrRiderNotAssigned),
		errors.Is(err, rider.ErrRiderBusy),
		errors.Is(err, rider.ErrRiderUnavailable),
		errors.Is(err, rider.ErrRiderNotAssigned),
		errors.Is(err, order.ErrConflict),
		errors.Is(err, ride.ErrConflict),
		errors.Is(err, rider.ErrConflict),
		errors.Is(err, cancellation.ErrConflict),
		errors.Is(err, tx.ErrConflict):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
