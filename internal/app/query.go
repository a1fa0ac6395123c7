package app

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Spok95/hifz-contest/internal/db"
	"github.com/Spok95/hifz-contest/internal/listing"
	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/scoring"
)

// paramError: неверный параметр списка, отдаётся как 400.
type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }

func badParam(format string, args ...any) error {
	return &paramError{msg: fmt.Sprintf(format, args...)}
}

// listParams: параметры списка из query или из тела массового удаления.
type listParams struct {
	Search string `json:"q"`
	Gender string `json:"gender"`
	Level  string `json:"level"`
	Status string `json:"status"`
	Band   string `json:"band"`
	Sort   string `json:"sort"`
	Dir    string `json:"dir"`
	Page   int    `json:"page"`
}

func paramsFromQuery(q url.Values) (listParams, error) {
	p := listParams{
		Search: q.Get("q"),
		Gender: q.Get("gender"),
		Level:  q.Get("level"),
		Status: q.Get("status"),
		Band:   q.Get("band"),
		Sort:   q.Get("sort"),
		Dir:    strings.ToLower(q.Get("dir")),
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, badParam("page: %v", err)
		}
		p.Page = n
	}
	return p, nil
}

func (p listParams) validate(isField func(string) bool) error {
	if p.Gender != "" && !models.Gender(p.Gender).Valid() {
		return badParam("unknown gender %q", p.Gender)
	}
	if p.Level != "" && !models.IsLevel(p.Level) {
		return badParam("unknown level %q", p.Level)
	}
	if p.Status != "" && !models.Status(p.Status).Valid() {
		return badParam("unknown status %q", p.Status)
	}
	if p.Band != "" && !scoring.IsResultBand(p.Band) {
		return badParam("unknown band %q", p.Band)
	}
	if p.Sort != "" && !isField(p.Sort) {
		return badParam("unknown sort field %q", p.Sort)
	}
	if p.Dir != "" && p.Dir != "asc" && p.Dir != "desc" {
		return badParam("dir must be asc or desc")
	}
	return nil
}

// applySort: без dir как клик по заголовку из исходного состояния, с dir явно.
func applySort[F comparable](st *listing.State[F], p listParams) {
	if p.Sort == "" {
		return
	}
	if p.Dir == "" {
		st.SortBy(p.Sort)
		return
	}
	st.SetSort(p.Sort, p.Dir == "desc")
}

func (p listParams) competitorState() (*listing.CompetitorState, error) {
	if err := p.validate(listing.IsCompetitorField); err != nil {
		return nil, err
	}
	st := listing.NewCompetitorState()
	st.SetFilter(listing.CompetitorFilter{
		Search: p.Search,
		Gender: models.Gender(p.Gender),
		Level:  p.Level,
		Status: models.Status(p.Status),
	})
	applySort(st, p)
	st.SetPage(p.Page)
	return st, nil
}

func (p listParams) resultState() (*listing.ResultState, error) {
	if err := p.validate(listing.IsResultField); err != nil {
		return nil, err
	}
	st := listing.NewResultState()
	st.SetFilter(listing.ResultFilter{
		Gender: models.Gender(p.Gender),
		Level:  p.Level,
		Band:   p.Band,
	})
	applySort(st, p)
	st.SetPage(p.Page)
	return st, nil
}

// pathID берёт id участника из пути; строка не в формате UUID означает "нет такого участника".
func pathID(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		return "", db.ErrNotFound
	}
	return id, nil
}
