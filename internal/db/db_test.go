//go:build testutil

package db_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/testutil/testdb"
)

func newCompetitor(name string) *models.Competitor {
	return &models.Competitor{
		FullName: name,
		Gender:   models.Male,
		Level:    models.Levels[0],
		City:     "الرياض",
		Mobile:   "0501234567",
	}
}

func TestCompetitorLifecycle(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	c := newCompetitor("  محمد أحمد ")
	if err := db.InsertCompetitor(ctx, h.DB, c); err != nil {
		t.Fatal(err)
	}
	if c.ID == "" || c.Status != models.NotEvaluated {
		t.Fatalf("ожидали id и статус по умолчанию, получили %+v", c)
	}

	exists, err := db.CompetitorExists(ctx, h.DB, c.Key())
	if err != nil || !exists {
		t.Fatalf("участник должен находиться по ключу: %v %v", exists, err)
	}

	// тот же ключ с другим телефоном, дубликат на уровне индекса
	dup := newCompetitor("محمد أحمد")
	dup.Mobile = "0559999999"
	if err := db.InsertCompetitor(ctx, h.DB, dup); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("ожидали ErrDuplicate, получили %v", err)
	}

	e := &models.Evaluation{CompetitorID: c.ID, Tanbih: 1, Fateh: 1, FinalScore: 97, EvaluatorName: "admin"}
	if err := db.UpsertEvaluation(ctx, h.DB, e); err != nil {
		t.Fatal(err)
	}
	firstID := e.ID
	e.Tajweed = 2
	e.FinalScore = 96
	if err := db.UpsertEvaluation(ctx, h.DB, e); err != nil {
		t.Fatal(err)
	}
	if e.ID != firstID {
		t.Fatalf("повторное сохранение должно обновлять ту же запись: %d != %d", e.ID, firstID)
	}
	if err := db.SetCompetitorStatus(ctx, h.DB, c.ID, models.Evaluated); err != nil {
		t.Fatal(err)
	}

	res, err := db.ListResults(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].Tajweed != 2 || res[0].Competitor.Status != models.Evaluated {
		t.Fatalf("неожиданные результаты: %+v", res)
	}

	if err := db.UpsertActiveEvaluation(ctx, h.DB, c.Level, c.ID); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteCompetitor(ctx, h.DB, c.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetEvaluationByCompetitor(ctx, h.DB, c.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("оценка должна удалиться каскадом, получили %v", err)
	}
	active, err := db.ListActiveEvaluations(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Fatalf("активная оценка должна удалиться вместе с участником: %+v", active)
	}
	if err := db.DeleteCompetitor(ctx, h.DB, c.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("повторное удаление: ожидали ErrNotFound, получили %v", err)
	}
}

func TestUpsertEvaluation_Parallel(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	c := newCompetitor("عبدالله")
	if err := db.InsertCompetitor(ctx, h.DB, c); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = db.UpsertEvaluation(ctx, h.DB, &models.Evaluation{
				CompetitorID: c.ID, Tanbih: n, FinalScore: 100 - float64(n), EvaluatorName: "e",
			})
		}(i)
	}
	wg.Wait()

	evals, err := db.ListEvaluations(ctx, h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 {
		t.Fatalf("на участника должна быть одна оценка, получили %d", len(evals))
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	u := &models.User{Username: "judge", PasswordHash: "x", Role: models.Evaluator}
	if err := db.CreateUser(ctx, h.DB, u); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateUser(ctx, h.DB, &models.User{Username: "judge", PasswordHash: "y", Role: models.Viewer}); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("ожидали ErrDuplicate, получили %v", err)
	}
	got, err := db.GetUserByUsername(ctx, h.DB, "judge")
	if err != nil {
		t.Fatal(err)
	}
	if got.Role != models.Evaluator || got.ID != u.ID {
		t.Fatalf("неожиданный пользователь: %+v", got)
	}
	if _, err := db.GetUserByUsername(ctx, h.DB, "nobody"); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("ожидали ErrNotFound, получили %v", err)
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	const bad = "abc"
	if _, err := db.GetCompetitor(ctx, h.DB, bad); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("GetCompetitor: ожидали ErrNotFound, получили %v", err)
	}
	if _, err := db.GetResult(ctx, h.DB, bad); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("GetResult: ожидали ErrNotFound, получили %v", err)
	}
	if _, err := db.GetEvaluationByCompetitor(ctx, h.DB, bad); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("GetEvaluationByCompetitor: ожидали ErrNotFound, получили %v", err)
	}
	if err := db.SetCompetitorStatus(ctx, h.DB, bad, models.Evaluated); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("SetCompetitorStatus: ожидали ErrNotFound, получили %v", err)
	}
	if err := db.DeleteCompetitor(ctx, h.DB, bad); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("DeleteCompetitor: ожидали ErrNotFound, получили %v", err)
	}
}
