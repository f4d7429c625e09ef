package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"dispatch/pkg/logger"
)

// Worker гоняет набор задач по тикеру до отмены контекста.
type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New запускает Worker.
//
// Сначала каждая задача выполняется один раз параллельно (прогрев). Ошибка или паника
// любой задачи на прогреве возвращается из New, и периодический запуск не стартует.
// После прогрева задачи крутятся в фоне, пока ctx не отменен; Wait дожидается их остановки.
func New(ctx context.Context, log workerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("Initializing", logger.NewField("task", task.Info()))
			return worker.run(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go worker.runBackgroundTask(ctx, task)
	}

	return worker, nil
}

// Wait блокируется, пока все периодические задачи не вышли.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	defer w.wg.Done()

	taskLog := w.log.With(logger.NewField("task", task.Info()))

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.Warn("invalid TTL, skipping periodic execution", logger.NewField("TTL", ttl))
		return
	}
	taskLog.Info("Starting periodic execution", logger.NewField("TTL", ttl))

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("Stopping task (context cancelled)")
			return
		case <-ticker.C:
			if err := w.run(ctx, task); err != nil {
				taskLog.Error("Background task failed", logger.NewField("error", err))
			}
		}
	}
}

// run выполняет задачу один раз, переводя панику в ошибку.
func (w *Worker) run(ctx context.Context, task Task) (err error) {
	start := time.Now()
	result := resultOK

	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			result = resultPanic
			err = fmt.Errorf("task %s panic: %v", task.Info(), r)
			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
		}

		taskRunDuration.WithLabelValues(task.Info()).Observe(time.Since(start).Seconds())
		taskRunsTotal.WithLabelValues(task.Info(), result).Inc()
	}()

	if err = task.Do(ctx); err != nil {
		result = resultError
	}
	return err
}
