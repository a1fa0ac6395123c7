package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/hifz-contest/internal/models"
)

// Store: тонкая обёртка над функциями пакета для тех, кому нужен интерфейс
// (импорт, живая сводка, HTTP-обработчики).
type Store struct {
	DB *sql.DB
}

func NewStore(database *sql.DB) *Store { return &Store{DB: database} }

func (s *Store) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

func (s *Store) InsertCompetitor(ctx context.Context, c *models.Competitor) error {
	return InsertCompetitor(ctx, s.DB, c)
}

func (s *Store) CompetitorExists(ctx context.Context, key models.DuplicateKey) (bool, error) {
	return CompetitorExists(ctx, s.DB, key)
}

func (s *Store) GetCompetitor(ctx context.Context, id string) (*models.Competitor, error) {
	return GetCompetitor(ctx, s.DB, id)
}

func (s *Store) ListCompetitors(ctx context.Context) ([]models.Competitor, error) {
	return ListCompetitors(ctx, s.DB)
}

func (s *Store) SetCompetitorStatus(ctx context.Context, id string, status models.Status) error {
	return SetCompetitorStatus(ctx, s.DB, id, status)
}

func (s *Store) DeleteCompetitor(ctx context.Context, id string) error {
	return DeleteCompetitor(ctx, s.DB, id)
}

func (s *Store) UpsertEvaluation(ctx context.Context, e *models.Evaluation) error {
	return UpsertEvaluation(ctx, s.DB, e)
}

func (s *Store) GetEvaluationByCompetitor(ctx context.Context, competitorID string) (*models.Evaluation, error) {
	return GetEvaluationByCompetitor(ctx, s.DB, competitorID)
}

func (s *Store) ListEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	return ListEvaluations(ctx, s.DB)
}

func (s *Store) ListResults(ctx context.Context) ([]models.Result, error) {
	return ListResults(ctx, s.DB)
}

func (s *Store) GetResult(ctx context.Context, competitorID string) (*models.Result, error) {
	return GetResult(ctx, s.DB, competitorID)
}

func (s *Store) UpsertActiveEvaluation(ctx context.Context, level, competitorID string) error {
	return UpsertActiveEvaluation(ctx, s.DB, level, competitorID)
}

func (s *Store) ListActiveEvaluations(ctx context.Context) ([]models.ActiveEvaluation, error) {
	return ListActiveEvaluations(ctx, s.DB)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return GetUserByUsername(ctx, s.DB, username)
}
