package livestats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/metrics"
	"github.com/Spok95/hifz-contest/internal/models"
)

// Board хранит последний снимок сводки для HTTP-обработчиков.
type Board struct {
	mu        sync.RWMutex
	stats     Stats
	active    []models.ActiveEvaluation
	updatedAt time.Time
	ready     bool
}

func NewBoard() *Board { return &Board{} }

func (b *Board) Snapshot() (Stats, []models.ActiveEvaluation, time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats, b.active, b.updatedAt, b.ready
}

// set сохраняет снимок и возвращает предыдущий.
func (b *Board) set(s Stats, active []models.ActiveEvaluation, at time.Time) (prev Stats, hadPrev bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev, hadPrev = b.stats, b.ready
	b.stats, b.active, b.updatedAt, b.ready = s, active, at, true
	return prev, hadPrev
}

type Source interface {
	ListCompetitors(ctx context.Context) ([]models.Competitor, error)
	ListEvaluations(ctx context.Context) ([]models.Evaluation, error)
	ListActiveEvaluations(ctx context.Context) ([]models.ActiveEvaluation, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Refresher перечитывает данные и обновляет Board. Смена вехи объявляется через Notifier,
// кроме самого первого прохода после старта.
type Refresher struct {
	src    Source
	board  *Board
	notify Notifier
	log    *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewRefresher(src Source, board *Board, notify Notifier, log *zap.Logger, loc *time.Location) *Refresher {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Refresher{src: src, board: board, notify: notify, log: log, loc: loc, now: time.Now}
}

func (r *Refresher) Refresh(ctx context.Context) error {
	comps, err := r.src.ListCompetitors(ctx)
	if err != nil {
		return fmt.Errorf("list competitors: %w", err)
	}
	evals, err := r.src.ListEvaluations(ctx)
	if err != nil {
		return fmt.Errorf("list evaluations: %w", err)
	}
	active, err := r.src.ListActiveEvaluations(ctx)
	if err != nil {
		return fmt.Errorf("list active evaluations: %w", err)
	}

	now := r.now().In(r.loc)
	s := Compute(comps, evals, now)
	metrics.LiveProgress.Set(float64(s.Progress))

	prev, hadPrev := r.board.set(s, active, now)
	if hadPrev && s.Milestone.Key != "" && s.Milestone != prev.Milestone && r.notify != nil {
		if err := r.notify.Notify(ctx, s.Milestone.Message); err != nil {
			// объявление не критично
			r.log.Warn("milestone notify failed", zap.String("milestone", s.Milestone.Key), zap.Error(err))
		}
	}
	return nil
}
