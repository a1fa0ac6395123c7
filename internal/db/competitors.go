package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/models"
)

const competitorColumns = `id, full_name, gender, level, city, mobile, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompetitor(r rowScanner, c *models.Competitor) error {
	return r.Scan(&c.ID, &c.FullName, &c.Gender, &c.Level, &c.City, &c.Mobile, &c.Status, &c.CreatedAt)
}

// InsertCompetitor: регистрация участника. Пустые id/статус/время заполняются здесь.
func InsertCompetitor(ctx context.Context, database *sql.DB, c *models.Competitor) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.NotEvaluated
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.FullName = strings.TrimSpace(c.FullName)
	c.City = strings.TrimSpace(c.City)

	_, err := database.ExecContext(ctx, `
		INSERT INTO competitors (`+competitorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.FullName, string(c.Gender), c.Level, c.City, c.Mobile, string(c.Status), c.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("competitor %q: %w", c.FullName, ErrDuplicate)
	}
	return err
}

// CompetitorExists ищет участника с тем же ключом (имя, пол, уровень, город).
func CompetitorExists(ctx context.Context, database *sql.DB, key models.DuplicateKey) (bool, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var exists bool
	err := database.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM competitors
			WHERE full_name = $1 AND gender = $2 AND level = $3 AND city = $4
		)`, key.FullName, string(key.Gender), key.Level, key.City,
	).Scan(&exists)
	return exists, err
}

// validID: колонка id имеет тип uuid, иначе Postgres отвечает 22P02 вместо "не найдено".
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func GetCompetitor(ctx context.Context, database *sql.DB, id string) (*models.Competitor, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var c models.Competitor
	err := scanCompetitor(database.QueryRowContext(ctx,
		`SELECT `+competitorColumns+` FROM competitors WHERE id = $1`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func ListCompetitors(ctx context.Context, database *sql.DB) ([]models.Competitor, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx,
		`SELECT `+competitorColumns+` FROM competitors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.Competitor{}
	for rows.Next() {
		var c models.Competitor
		if err := scanCompetitor(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func SetCompetitorStatus(ctx context.Context, database *sql.DB, id string, status models.Status) error {
	if !validID(id) {
		return ErrNotFound
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `UPDATE competitors SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// DeleteCompetitor: оценка и отметка "на оценке" удаляются каскадом.
func DeleteCompetitor(ctx context.Context, database *sql.DB, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `DELETE FROM competitors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
