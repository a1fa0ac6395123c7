// Package printout собирает печатные HTML-версии списков и сертификат участника.
package printout

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/scoring"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"score":  func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"date":   func(t time.Time) string { return t.Format("2006-01-02") },
	"band":   scoring.ResultBand,
	"evband": scoring.EvaluationBand,
	"inc":    func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/*.html"))

type rosterData struct {
	Title       string
	Items       []models.Competitor
	GeneratedAt time.Time
}

type resultsData struct {
	Title       string
	Items       []models.Result
	GeneratedAt time.Time
}

type certificateData struct {
	Result models.Result
	Band   scoring.Band
	Issued time.Time
}

func Roster(w io.Writer, title string, items []models.Competitor, at time.Time) error {
	return tmpl.ExecuteTemplate(w, "roster.html", rosterData{Title: title, Items: items, GeneratedAt: at})
}

// Results печатает таблицу с разбивкой ошибок по категориям.
func Results(w io.Writer, title string, items []models.Result, at time.Time) error {
	return tmpl.ExecuteTemplate(w, "results.html", resultsData{Title: title, Items: items, GeneratedAt: at})
}

func Certificate(w io.Writer, r models.Result, at time.Time) error {
	return tmpl.ExecuteTemplate(w, "certificate.html", certificateData{
		Result: r,
		Band:   scoring.EvaluationBand(r.FinalScore),
		Issued: at,
	})
}
