package scheduled_rides

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

// ScheduledRides диспетчеризует поездки, чье время подачи наступило,
// и повторяет поиск для немедленных поездок без райдера.
type ScheduledRides struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func New(log handlerLogger, service Service, interval time.Duration) *ScheduledRides {
	return &ScheduledRides{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (s *ScheduledRides) TTL() time.Duration {
	return s.interval
}

func (s *ScheduledRides) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	assigned, err := s.service.DispatchDueRides(ctxWithTimeout)
	if assigned > 0 {
		s.log.Info("due rides dispatched",
			logger.NewField("assigned", assigned),
		)
	}

	return err
}

func (s *ScheduledRides) Info() string {
	return "scheduled rides dispatch"
}
