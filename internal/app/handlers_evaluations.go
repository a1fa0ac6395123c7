package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/metrics"
	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/observability"
	"github.com/Spok95/hifz-contest/internal/scoring"
)

// ErrStatusNotUpdated: оценка сохранена, но участник не отмечен как оценённый.
// Отката нет: повторное сохранение допишет статус.
var ErrStatusNotUpdated = errors.New("evaluation saved, competitor status not updated")

type scoreView struct {
	Counts     scoring.Counts `json:"counts"`
	Deduction  float64        `json:"deduction"`
	Score      float64        `json:"score"`
	Band       scoring.Band   `json:"band"`
	ResultBand scoring.Band   `json:"result_band"`
}

func newScoreView(c scoring.Counts) scoreView {
	score := scoring.Score(c)
	return scoreView{
		Counts:     c,
		Deduction:  c.Deduction(),
		Score:      score,
		Band:       scoring.EvaluationBand(score),
		ResultBand: scoring.ResultBand(score),
	}
}

func countsOf(e *models.Evaluation) scoring.Counts {
	return scoring.Counts{Tanbih: e.Tanbih, Fateh: e.Fateh, Tashkeel: e.Tashkeel, Tajweed: e.Tajweed}
}

type openResponse struct {
	Competitor *models.Competitor `json:"competitor"`
	Evaluation *models.Evaluation `json:"evaluation"`
	Score      scoreView          `json:"score"`
}

// openEvaluation отмечает участника как текущего в его уровне и отдаёт прежнюю оценку, если она была.
func (s *Server) openEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r, "competitorID")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.store.GetCompetitor(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.UpsertActiveEvaluation(ctx, c.Level, c.ID); err != nil {
		s.fail(w, r, err)
		return
	}

	resp := openResponse{Competitor: c}
	e, err := s.store.GetEvaluationByCompetitor(ctx, id)
	switch {
	case errors.Is(err, db.ErrNotFound):
		resp.Score = newScoreView(scoring.Counts{})
	case err != nil:
		s.fail(w, r, err)
		return
	default:
		resp.Evaluation = e
		resp.Score = newScoreView(countsOf(e))
	}
	JSONResponse(w, http.StatusOK, resp)
}

type saveResponse struct {
	Evaluation *models.Evaluation `json:"evaluation"`
	Score      scoreView          `json:"score"`
}

type partialSaveResponse struct {
	errorBody
	Evaluation *models.Evaluation `json:"evaluation"`
}

// saveEvaluation делает две независимые записи: оценку, затем статус участника.
func (s *Server) saveEvaluation(w http.ResponseWriter, r *http.Request) {
	var counts scoring.Counts
	if err := parseJSON(w, r, &counts); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "طلب غير صالح")
		return
	}
	if counts.Tanbih < 0 || counts.Fateh < 0 || counts.Tashkeel < 0 || counts.Tajweed < 0 {
		ErrorResponse(w, http.StatusUnprocessableEntity, "عدد الأخطاء لا يكون سالباً")
		return
	}

	ctx := r.Context()
	id, err := pathID(r, "competitorID")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.store.GetCompetitor(ctx, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sess, _ := ctxutil.Session(ctx)
	view := newScoreView(counts)
	e := &models.Evaluation{
		CompetitorID:  c.ID,
		Tanbih:        counts.Tanbih,
		Fateh:         counts.Fateh,
		Tashkeel:      counts.Tashkeel,
		Tajweed:       counts.Tajweed,
		FinalScore:    view.Score,
		EvaluatorName: sess.Username,
	}
	if err := s.store.UpsertEvaluation(ctx, e); err != nil {
		s.fail(w, r, fmt.Errorf("upsert evaluation: %w", err))
		return
	}
	metrics.EvaluationsSaved.Inc()

	if err := s.store.SetCompetitorStatus(ctx, c.ID, models.Evaluated); err != nil {
		err = fmt.Errorf("%w: %w", ErrStatusNotUpdated, err)
		s.log.Error("evaluation status update failed", zap.String("competitor_id", c.ID), zap.Error(err))
		metrics.HandlerErrors.Inc()
		observability.CaptureErrWith(err, map[string]string{"op": "evaluations.save"})
		JSONResponse(w, http.StatusInternalServerError, partialSaveResponse{
			errorBody: errorBody{
				Error:   http.StatusText(http.StatusInternalServerError),
				Message: "تم حفظ التقييم ولم يتم تحديث حالة المتسابق، أعد الحفظ",
			},
			Evaluation: e,
		})
		return
	}

	s.log.Info("evaluation saved",
		zap.String("competitor_id", c.ID),
		zap.Float64("score", e.FinalScore),
		zap.String("evaluator", e.EvaluatorName),
	)
	JSONResponse(w, http.StatusOK, saveResponse{Evaluation: e, Score: view})
}

// scorePreview считает балл без записи: счётчики из query.
func (s *Server) scorePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var c scoring.Counts
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"tanbih", &c.Tanbih},
		{"fateh", &c.Fateh},
		{"tashkeel", &c.Tashkeel},
		{"tajweed", &c.Tajweed},
	} {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			ErrorResponse(w, http.StatusBadRequest, f.name+": expected non-negative integer")
			return
		}
		*f.dst = n
	}
	JSONResponse(w, http.StatusOK, newScoreView(c))
}
