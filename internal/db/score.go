package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/models"
)

const evaluationColumns = `e.id, e.competitor_id, e.tanbih, e.fateh, e.tashkeel, e.tajweed, e.final_score, e.evaluator_name, e.created_at, e.updated_at`

func scanEvaluation(r rowScanner, e *models.Evaluation) error {
	return r.Scan(&e.ID, &e.CompetitorID, &e.Tanbih, &e.Fateh, &e.Tashkeel, &e.Tajweed,
		&e.FinalScore, &e.EvaluatorName, &e.CreatedAt, &e.UpdatedAt)
}

// UpsertEvaluation: одна оценка на участника; повторное сохранение перезаписывает счётчики.
func UpsertEvaluation(ctx context.Context, database *sql.DB, e *models.Evaluation) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	return database.QueryRowContext(ctx, `
		INSERT INTO evaluations (competitor_id, tanbih, fateh, tashkeel, tajweed, final_score, evaluator_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (competitor_id) DO UPDATE SET
			tanbih = excluded.tanbih,
			fateh = excluded.fateh,
			tashkeel = excluded.tashkeel,
			tajweed = excluded.tajweed,
			final_score = excluded.final_score,
			evaluator_name = excluded.evaluator_name,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		e.CompetitorID, e.Tanbih, e.Fateh, e.Tashkeel, e.Tajweed, e.FinalScore, e.EvaluatorName,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func GetEvaluationByCompetitor(ctx context.Context, database *sql.DB, competitorID string) (*models.Evaluation, error) {
	if !validID(competitorID) {
		return nil, ErrNotFound
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var e models.Evaluation
	err := scanEvaluation(database.QueryRowContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations e WHERE e.competitor_id = $1`, competitorID), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func ListEvaluations(ctx context.Context, database *sql.DB) ([]models.Evaluation, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations e ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Evaluation{}
	for rows.Next() {
		var e models.Evaluation
		if err := scanEvaluation(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const resultQuery = `
	SELECT ` + evaluationColumns + `,
	       c.id, c.full_name, c.gender, c.level, c.city, c.mobile, c.status, c.created_at
	FROM evaluations e
	JOIN competitors c ON c.id = e.competitor_id`

func scanResult(r rowScanner, res *models.Result) error {
	e, c := &res.Evaluation, &res.Competitor
	return r.Scan(&e.ID, &e.CompetitorID, &e.Tanbih, &e.Fateh, &e.Tashkeel, &e.Tajweed,
		&e.FinalScore, &e.EvaluatorName, &e.CreatedAt, &e.UpdatedAt,
		&c.ID, &c.FullName, &c.Gender, &c.Level, &c.City, &c.Mobile, &c.Status, &c.CreatedAt)
}

// ListResults: оценки вместе с участниками, от лучшего балла.
func ListResults(ctx context.Context, database *sql.DB) ([]models.Result, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, resultQuery+` ORDER BY e.final_score DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Result{}
	for rows.Next() {
		var r models.Result
		if err := scanResult(rows, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func GetResult(ctx context.Context, database *sql.DB, competitorID string) (*models.Result, error) {
	if !validID(competitorID) {
		return nil, ErrNotFound
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var r models.Result
	err := scanResult(database.QueryRowContext(ctx, resultQuery+` WHERE e.competitor_id = $1`, competitorID), &r)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpsertActiveEvaluation отмечает, кого сейчас оценивают в уровне. Ключ: уровень.
func UpsertActiveEvaluation(ctx context.Context, database *sql.DB, level, competitorID string) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	_, err := database.ExecContext(ctx, `
		INSERT INTO active_evaluations (level, competitor_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (level) DO UPDATE SET competitor_id = excluded.competitor_id, updated_at = now()`,
		level, competitorID)
	return err
}

func ListActiveEvaluations(ctx context.Context, database *sql.DB) ([]models.ActiveEvaluation, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx,
		`SELECT level, competitor_id, updated_at FROM active_evaluations ORDER BY level`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.ActiveEvaluation{}
	for rows.Next() {
		var a models.ActiveEvaluation
		if err := rows.Scan(&a.Level, &a.CompetitorID, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
