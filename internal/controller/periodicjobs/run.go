package periodicjobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

const (
	syncOnceInterval time.Duration = 0
)

// RunAll runs all the tasks in the PeriodicTaskManager
// it launches a new goroutine for each task
// and stops when the context is canceled.
// Each task runs once immediately and then on every tick of its interval.
// If interval <= 0, the task is run only once.
// The returned WaitGroup completes when every task goroutine has exited.
func (p *PeriodicTaskManager) RunAll(ctx context.Context) *sync.WaitGroup {
	log := logger.Logger(ctx)
	log.WithField("tasks", len(p.Tasks)).Info("running periodic tasks")

	wg := &sync.WaitGroup{}
	for _, task := range p.Tasks {
		wg.Add(1)
		go func(task PeriodicTask) {
			defer wg.Done()
			p.runTask(ctx, task)
		}(task)
	}
	return wg
}

func (*PeriodicTaskManager) runTask(ctx context.Context, task PeriodicTask) {
	interval := task.GetInterval()
	ctx = logger.AddValueToContextLogger(ctx, "task", task.GetName())
	log := logger.Logger(ctx)

	run := func() {
		log.WithField("interval", interval).Info("running periodic task")
		if err := task.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("error running periodic task")
		}
	}

	if ctx.Err() != nil {
		return
	}
	run()

	if interval <= syncOnceInterval {
		log.Info("task configured to run only once, exiting")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithFields(logrus.Fields{"reason": ctx.Err()}).Info("stopping periodic task")
			return
		case <-ticker.C:
			run()
		}
	}
}
