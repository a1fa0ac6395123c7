package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/observability"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	log *zap.Logger
	wg  sync.WaitGroup
}

func New(ctx context.Context, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ctx: ctx, log: log}
}

// Every запускает задачу сразу и затем по тикеру, пока жив контекст раннера.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(name, fn)

		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

// Wait блокирует до остановки всех задач (после отмены контекста).
func (r *Runner) Wait() { r.wg.Wait() }

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	outcome := outcomeOK
	defer func() {
		end := time.Now()
		observeRun(name, outcome, end.Sub(start).Seconds(), end.Unix())
	}()
	defer func() {
		if err := observability.RecoverErr(name, recover()); err != nil {
			outcome = outcomePanic
			r.log.Error("job panic", zap.String("job", name), zap.Error(err))
		}
	}()

	if err := fn(r.ctx); err != nil {
		outcome = outcomeError
		if r.ctx.Err() == nil {
			r.log.Warn("job failed", zap.String("job", name), zap.Error(err))
		}
	}
}
