package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Spok95/hifz-contest/internal/ctxutil"
	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/export"
	"github.com/Spok95/hifz-contest/internal/importer"
	"github.com/Spok95/hifz-contest/internal/listing"
	"github.com/Spok95/hifz-contest/internal/metrics"
	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/printout"
)

const maxImportSize = 10 << 20

func (s *Server) listCompetitors(w http.ResponseWriter, r *http.Request) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	st, err := p.competitorState()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	all, err := s.store.ListCompetitors(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, listing.Competitors(all, st))
}

// sortedCompetitors: все участники по фильтру и сортировке из query, без страниц.
func (s *Server) sortedCompetitors(r *http.Request) ([]models.Competitor, error) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}
	st, err := p.competitorState()
	if err != nil {
		return nil, err
	}
	all, err := s.store.ListCompetitors(r.Context())
	if err != nil {
		return nil, fmt.Errorf("list competitors: %w", err)
	}
	return listing.AllCompetitors(all, st), nil
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
	Level    string `json:"level"`
	City     string `json:"city"`
	Mobile   string `json:"mobile"`
}

func (s *Server) registerCompetitor(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := parseJSON(w, r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "طلب غير صالح")
		return
	}
	c := &models.Competitor{
		FullName: strings.TrimSpace(req.FullName),
		Gender:   models.Gender(strings.TrimSpace(req.Gender)),
		Level:    strings.TrimSpace(req.Level),
		City:     strings.TrimSpace(req.City),
		Mobile:   strings.TrimSpace(req.Mobile),
		Status:   models.NotEvaluated,
	}
	if err := importer.Validate(*c); err != nil {
		s.fail(w, r, err)
		return
	}

	ctx := r.Context()
	exists, err := s.store.CompetitorExists(ctx, c.Key())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if exists {
		s.fail(w, r, db.ErrDuplicate)
		return
	}
	if err := s.store.InsertCompetitor(ctx, c); err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("competitor registered", zap.String("id", c.ID), zap.String("level", c.Level))
	JSONResponse(w, http.StatusCreated, c)
}

func (s *Server) importCompetitors(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	defer func() { _ = r.Body.Close() }()

	var src io.Reader = r.Body
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		f, _, err := r.FormFile("file")
		if err != nil {
			ErrorResponse(w, http.StatusBadRequest, "الملف مطلوب")
			return
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	res, err := s.importer.Run(r.Context(), src)
	switch {
	case err != nil && res == nil:
		s.fail(w, r, err)
		return
	case err != nil:
		status := http.StatusUnprocessableEntity
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		s.log.Warn("import stopped early", zap.Int("success", res.Success), zap.Error(err))
		JSONResponse(w, status, partialImportResponse{
			errorBody: errorBody{
				Error:   http.StatusText(status),
				Message: "توقف الاستيراد قبل نهاية الملف، الصفوف السابقة محفوظة",
			},
			Result: res,
		})
		return
	}
	JSONResponse(w, http.StatusOK, res)
}

type partialImportResponse struct {
	errorBody
	Result *importer.Result `json:"result"`
}

func (s *Server) checkSecret(given string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.deleteSecret)) == 1
}

func (s *Server) deleteCompetitor(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Delete-Secret")
	if secret == "" {
		secret = r.URL.Query().Get("secret")
	}
	if !s.checkSecret(secret) {
		ErrorResponse(w, http.StatusForbidden, "رمز التأكيد غير صحيح")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.DeleteCompetitor(r.Context(), id); err != nil {
		metrics.CompetitorsDeleted.WithLabelValues("error").Inc()
		s.fail(w, r, err)
		return
	}
	metrics.CompetitorsDeleted.WithLabelValues("ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	Mode   string   `json:"mode"`
	IDs    []string `json:"ids"`
	Secret string   `json:"secret"`
	listParams
}

type bulkDeleteResult struct {
	Requested int      `json:"requested"`
	Deleted   int      `json:"deleted"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids"`
}

// bulkDelete удаляет по одному; ошибка строки считается и пропускается.
func (s *Server) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := parseJSON(w, r, &req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "طلب غير صالح")
		return
	}
	if !s.checkSecret(req.Secret) {
		ErrorResponse(w, http.StatusForbidden, "رمز التأكيد غير صحيح")
		return
	}

	sel := listing.NewSelection()
	switch req.Mode {
	case "ids":
		for _, id := range req.IDs {
			if !sel.Has(id) {
				sel.Toggle(id)
			}
		}
	case "page", "all":
		st, err := req.competitorState()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		all, err := s.store.ListCompetitors(r.Context())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		var items []models.Competitor
		if req.Mode == "page" {
			items = listing.Competitors(all, st).Items
		} else {
			items = listing.AllCompetitors(all, st)
		}
		ids := make([]string, len(items))
		for i, c := range items {
			ids[i] = c.ID
		}
		sel.TogglePage(ids)
	default:
		ErrorResponse(w, http.StatusBadRequest, "mode must be ids, page or all")
		return
	}

	ctx := ctxutil.WithOp(r.Context(), "competitors.bulk_delete")
	JSONResponse(w, http.StatusOK, s.deleteAll(ctx, sel.IDs()))
}

func (s *Server) deleteAll(ctx context.Context, ids []string) bulkDeleteResult {
	res := bulkDeleteResult{Requested: len(ids), FailedIDs: []string{}}
	for _, id := range ids {
		if err := s.store.DeleteCompetitor(ctx, id); err != nil {
			res.Failed++
			res.FailedIDs = append(res.FailedIDs, id)
			metrics.CompetitorsDeleted.WithLabelValues("error").Inc()
			s.log.Warn("delete competitor failed", zap.String("id", id), zap.Error(err))
			continue
		}
		res.Deleted++
		metrics.CompetitorsDeleted.WithLabelValues("ok").Inc()
	}
	s.log.Info("bulk delete done",
		zap.Int("requested", res.Requested), zap.Int("deleted", res.Deleted), zap.Int("failed", res.Failed))
	return res
}

func (s *Server) exportCompetitors(w http.ResponseWriter, r *http.Request) {
	items, err := s.sortedCompetitors(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	setAttachment(w, export.BuildFilename("competitors", s.now().In(s.loc)))
	if err := export.Roster(w, items); err != nil {
		s.log.Error("roster export failed", zap.Error(err))
	}
}

func (s *Server) printCompetitors(w http.ResponseWriter, r *http.Request) {
	items, err := s.sortedCompetitors(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := printout.Roster(w, "قائمة المتسابقين", items, s.now().In(s.loc)); err != nil {
		s.log.Error("roster print failed", zap.Error(err))
	}
}

func setAttachment(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}
