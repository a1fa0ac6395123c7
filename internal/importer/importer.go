// Package importer загружает участников из CSV: нормализация, дедупликация, построчные ошибки.
package importer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/metrics"
	"github.com/Spok95/hifz-contest/internal/models"
)

const fieldsPerRow = 5

const (
	reasonIncomplete = "بيانات ناقصة"
	reasonUnreadable = "تعذرت قراءة بقية الملف"
)

// Store: то, что импорту нужно от хранилища.
type Store interface {
	CompetitorExists(ctx context.Context, key models.DuplicateKey) (bool, error)
	InsertCompetitor(ctx context.Context, c *models.Competitor) error
}

type RowError struct {
	Row    int    `json:"row"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type Result struct {
	Success   int        `json:"success"`
	Skipped   int        `json:"skipped"`
	Errors    int        `json:"errors"`
	RowErrors []RowError `json:"row_errors"`
}

func (r *Result) fail(row int, name, reason string) {
	r.Errors++
	r.RowErrors = append(r.RowErrors, RowError{Row: row, Name: name, Reason: reason})
	metrics.ImportRows.WithLabelValues("error").Inc()
}

func (r *Result) skip() {
	r.Skipped++
	metrics.ImportRows.WithLabelValues("skipped").Inc()
}

type Importer struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: store, log: log}
}

// ParseRow разбирает одну строку файла (без заголовка).
func ParseRow(line string) (models.Competitor, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < fieldsPerRow {
		return models.Competitor{FullName: fields[0]}, errors.New(reasonIncomplete)
	}

	c := models.Competitor{
		FullName: fields[0],
		City:     fields[3],
		Mobile:   fields[4],
		Status:   models.NotEvaluated,
	}
	if c.FullName == "" || c.City == "" {
		return c, errors.New(reasonIncomplete)
	}

	g, err := NormalizeGender(fields[1])
	if err != nil {
		return c, err
	}
	c.Gender = g
	c.Level = NormalizeLevel(fields[2])

	if !ValidMobile(c.Mobile) {
		return c, fmt.Errorf("رقم جوال غير صالح: %s", c.Mobile)
	}
	return c, nil
}

// Run читает CSV целиком. Ошибки отдельных строк не прерывают импорт.
// Если чтение оборвалось, вместе с ошибкой возвращается частичный итог:
// строки до обрыва уже записаны, обрыв добавлен последней ошибкой строки.
func (im *Importer) Run(ctx context.Context, r io.Reader) (*Result, error) {
	res := &Result{RowErrors: []RowError{}}
	seen := make(map[models.DuplicateKey]struct{})

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	header := true
	row := 0
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}
		row++

		c, err := ParseRow(line)
		if err != nil {
			res.fail(row, c.FullName, err.Error())
			continue
		}

		key := c.Key()
		if _, dup := seen[key]; dup {
			res.skip()
			continue
		}
		seen[key] = struct{}{}

		exists, err := im.store.CompetitorExists(ctx, key)
		if err != nil {
			im.log.Warn("import: duplicate lookup failed", zap.Int("row", row), zap.Error(err))
			res.fail(row, c.FullName, err.Error())
			continue
		}
		if exists {
			res.skip()
			continue
		}

		if err := im.store.InsertCompetitor(ctx, &c); err != nil {
			im.log.Warn("import: insert failed", zap.Int("row", row), zap.String("name", c.FullName), zap.Error(err))
			res.fail(row, c.FullName, err.Error())
			continue
		}
		res.Success++
		metrics.ImportRows.WithLabelValues("success").Inc()
	}
	if err := sc.Err(); err != nil {
		res.fail(row+1, "", reasonUnreadable)
		im.log.Warn("import: read stopped", zap.Int("row", row+1), zap.Int("success", res.Success), zap.Error(err))
		return res, fmt.Errorf("read csv after row %d: %w", row, err)
	}

	im.log.Info("import finished",
		zap.Int("success", res.Success), zap.Int("skipped", res.Skipped), zap.Int("errors", res.Errors))
	return res, nil
}
