package listing

import (
	"golang.org/x/text/collate"

	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/scoring"
)

const (
	FieldFinalScore    = "final_score"
	FieldTanbih        = "tanbih"
	FieldFateh         = "fateh"
	FieldTashkeel      = "tashkeel"
	FieldTajweed       = "tajweed"
	FieldEvaluatorName = "evaluator_name"
	FieldUpdatedAt     = "updated_at"
)

var resultFields = []string{
	FieldFullName, FieldGender, FieldLevel, FieldCity, FieldFinalScore,
	FieldTanbih, FieldFateh, FieldTashkeel, FieldTajweed, FieldEvaluatorName, FieldUpdatedAt,
}

func IsResultField(f string) bool {
	for _, x := range resultFields {
		if x == f {
			return true
		}
	}
	return false
}

type ResultFilter struct {
	Gender models.Gender
	Level  string
	Band   string
}

func (f ResultFilter) Match(r models.Result) bool {
	if f.Gender != "" && r.Competitor.Gender != f.Gender {
		return false
	}
	if f.Level != "" && r.Competitor.Level != f.Level {
		return false
	}
	if f.Band != "" && scoring.ResultBand(r.FinalScore).Key != f.Band {
		return false
	}
	return true
}

type ResultState = State[ResultFilter]

// NewResultState: по умолчанию лучшие баллы сверху.
func NewResultState() *ResultState {
	return newState[ResultFilter](Sort{Field: FieldFinalScore, Desc: true}, func(f string) bool {
		return f == FieldFinalScore || f == FieldUpdatedAt
	})
}

func Results(items []models.Result, st *ResultState) Page[models.Result] {
	return apply(items, st.Filter.Match, resultCmp(st.Sort.Field, newCollator()), st.Sort, st.Page)
}

func AllResults(items []models.Result, st *ResultState) []models.Result {
	return arrange(items, st.Filter.Match, resultCmp(st.Sort.Field, newCollator()), st.Sort)
}

func resultCmp(field string, col *collate.Collator) func(a, b models.Result) int {
	switch field {
	case FieldFinalScore:
		return func(a, b models.Result) int { return compareFloats(a.FinalScore, b.FinalScore) }
	case FieldTanbih:
		return func(a, b models.Result) int { return compareInts(a.Tanbih, b.Tanbih) }
	case FieldFateh:
		return func(a, b models.Result) int { return compareInts(a.Fateh, b.Fateh) }
	case FieldTashkeel:
		return func(a, b models.Result) int { return compareInts(a.Tashkeel, b.Tashkeel) }
	case FieldTajweed:
		return func(a, b models.Result) int { return compareInts(a.Tajweed, b.Tajweed) }
	case FieldEvaluatorName:
		return func(a, b models.Result) int { return col.CompareString(a.EvaluatorName, b.EvaluatorName) }
	case FieldUpdatedAt:
		return func(a, b models.Result) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	}
	cc := competitorCmp(field, col)
	if cc == nil {
		return nil
	}
	return func(a, b models.Result) int { return cc(a.Competitor, b.Competitor) }
}
