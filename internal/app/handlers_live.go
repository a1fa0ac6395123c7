package app

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/livestats"
	"github.com/Spok95/hifz-contest/internal/models"
)

type liveResponse struct {
	Stats     livestats.Stats `json:"stats"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// snapshot отдаёт сводку с доски; до первого пересчёта отвечает 503.
func (s *Server) snapshot(w http.ResponseWriter) (livestats.Stats, []models.ActiveEvaluation, time.Time, bool) {
	st, active, at, ok := s.board.Snapshot()
	if !ok {
		ErrorResponse(w, http.StatusServiceUnavailable, "الإحصائيات قيد التحضير")
	}
	return st, active, at, ok
}

func (s *Server) live(w http.ResponseWriter, r *http.Request) {
	g := models.Gender(r.URL.Query().Get("gender"))
	if g != "" && !g.Valid() {
		s.fail(w, r, badParam("unknown gender %q", g))
		return
	}
	st, _, at, ok := s.snapshot(w)
	if !ok {
		return
	}
	if g != "" {
		st = livestats.Project(st, g)
	}
	JSONResponse(w, http.StatusOK, liveResponse{Stats: st, UpdatedAt: at})
}

func (s *Server) liveChart(w http.ResponseWriter, r *http.Request) {
	st, _, _, ok := s.snapshot(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := livestats.RenderLevelChart(w, st); err != nil {
		s.log.Error("level chart failed", zap.Error(err))
	}
}

func (s *Server) liveActive(w http.ResponseWriter, r *http.Request) {
	_, active, at, ok := s.snapshot(w)
	if !ok {
		return
	}
	JSONResponse(w, http.StatusOK, struct {
		Active    []models.ActiveEvaluation `json:"active"`
		UpdatedAt time.Time                 `json:"updated_at"`
	}{active, at})
}
