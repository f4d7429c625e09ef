package order_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"dispatch/internal/entities"
	orderservice "dispatch/internal/service/order"
	"dispatch/pkg/logger"
	"dispatch/pkg/tx"
)

type Handler struct {
	orderService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		orderService:             orderService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order.status.changed: claim closed")
				return nil
			}

			if stop := h.messageProcessing(sess, message); stop {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка группы
			h.log.Info("order.status.changed: session done")
			return nil
		}
	}
}

// messageProcessing возвращает true, если сообщение нужно оставить непомеченным
// и выйти из ConsumeClaim, чтобы оно пришло снова.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.Error("order.status.changed: bad message",
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		)
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order_id", event.OrderID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	if event.OrderID == "" || event.AccountID == "" {
		msgLog.Warn("order.status.changed: order or account missing, skipped")
		sess.MarkMessage(message, "")
		return false
	}

	caller := entities.Caller{
		AccountID: event.AccountID,
		Role:      entities.RoleRestaurant,
	}

	result, err := h.orderService.UpdateStatus(ctx, caller, event.OrderID, entities.OrderStatusType(event.Status))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("order.status.changed: processing interrupted, message will be redelivered",
				logger.NewField("error", err),
			)
			return true

		case tx.IsRetryable(err):
			// гонка не решилась и после повторов транзакции, переход еще не применен
			msgLog.Warn("order.status.changed: serialization conflict, message will be redelivered",
				logger.NewField("error", err),
			)
			return true

		case errors.Is(err, orderservice.ErrInvalidStatus),
			errors.Is(err, orderservice.ErrInvalidTransition),
			errors.Is(err, orderservice.ErrOrderNotFound),
			errors.Is(err, orderservice.ErrForbidden):
			msgLog.Warn("order.status.changed: rejected",
				logger.NewField("error", err),
			)

		default:
			msgLog.Error("order.status.changed: failed",
				logger.NewField("error", err),
			)
		}

		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order.status.changed: processed",
		logger.NewField("current_status", result.Order.Status.String()),
		logger.NewField("assigned", result.Assigned),
	)
	sess.MarkMessage(message, "")
	return false
}
