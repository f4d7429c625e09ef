package notifier

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

const publishTimeout = 3 * time.Second

// Notifier best-effort рассылка: ошибки паблишеров пишутся в лог и в метрики,
// вызывающий сервис их не видит, состояние уже закоммичено.
type Notifier struct {
	publishers []Publisher
	log        handlerLogger
}

func New(log handlerLogger, publishers ...Publisher) *Notifier {
	return &Notifier{
		publishers: publishers,
		log:        log,
	}
}

func (n *Notifier) Notify(ctx context.Context, events ...entities.Event) {
	if len(events) == 0 {
		return
	}

	// запрос может быть уже отменен, а события должны уйти
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	for _, event := range events {
		for _, publisher := range n.publishers {
			err := publisher.Publish(ctx, event)
			if err != nil {
				EventsPublishedTotal.WithLabelValues(publisher.Name(), event.Type.String(), "error").Inc()
				n.log.Warn("event publish failed",
					logger.NewField("sink", publisher.Name()),
					logger.NewField("event", event.Type.String()),
					logger.NewField("channel", event.Channel),
					logger.NewField("error", err),
				)
				continue
			}
			EventsPublishedTotal.WithLabelValues(publisher.Name(), event.Type.String(), "ok").Inc()
		}
	}
}
