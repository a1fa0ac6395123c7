package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/export"
	"github.com/Spok95/hifz-contest/internal/listing"
	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/printout"
)

func (s *Server) loadResults(r *http.Request) (*listing.ResultState, []models.Result, error) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		return nil, nil, err
	}
	st, err := p.resultState()
	if err != nil {
		return nil, nil, err
	}
	all, err := s.store.ListResults(r.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("list results: %w", err)
	}
	return st, all, nil
}

func (s *Server) listResults(w http.ResponseWriter, r *http.Request) {
	st, all, err := s.loadResults(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, listing.Results(all, st))
}

func (s *Server) exportResults(w http.ResponseWriter, r *http.Request) {
	st, all, err := s.loadResults(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setAttachment(w, export.BuildFilename("results", s.now().In(s.loc)))
	if err := export.Results(w, listing.AllResults(all, st)); err != nil {
		s.log.Error("results export failed", zap.Error(err))
	}
}

func (s *Server) printResults(w http.ResponseWriter, r *http.Request) {
	st, all, err := s.loadResults(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := printout.Results(w, "النتائج", listing.AllResults(all, st), s.now().In(s.loc)); err != nil {
		s.log.Error("results print failed", zap.Error(err))
	}
}

func (s *Server) certificate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "competitorID")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.store.GetResult(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := printout.Certificate(w, *res, s.now().In(s.loc)); err != nil {
		s.log.Error("certificate failed", zap.Error(err))
	}
}
