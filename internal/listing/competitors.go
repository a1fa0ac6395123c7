package listing

import (
	"strings"

	"golang.org/x/text/collate"

	"github.com/Spok95/hifz-contest/internal/models"
)

// Поля сортировки списка участников.
const (
	FieldFullName  = "full_name"
	FieldGender    = "gender"
	FieldLevel     = "level"
	FieldCity      = "city"
	FieldMobile    = "mobile"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

var competitorFields = []string{FieldFullName, FieldGender, FieldLevel, FieldCity, FieldMobile, FieldStatus, FieldCreatedAt}

func IsCompetitorField(f string) bool {
	for _, x := range competitorFields {
		if x == f {
			return true
		}
	}
	return false
}

type CompetitorFilter struct {
	Search string
	Gender models.Gender
	Level  string
	Status models.Status
}

func (f CompetitorFilter) Match(c models.Competitor) bool {
	if f.Gender != "" && c.Gender != f.Gender {
		return false
	}
	if f.Level != "" && c.Level != f.Level {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	return MatchSearch(c, f.Search)
}

// MatchSearch: подстрока имени без учёта регистра, подстрока телефона,
// или каждое слово запроса входит хотя бы в одно слово имени (в любом порядке).
func MatchSearch(c models.Competitor, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	name := strings.ToLower(c.FullName)
	lq := strings.ToLower(q)
	if strings.Contains(name, lq) {
		return true
	}
	if strings.Contains(c.Mobile, q) {
		return true
	}
	words := strings.Fields(name)
	for _, tok := range strings.Fields(lq) {
		found := false
		for _, w := range words {
			if strings.Contains(w, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type CompetitorState = State[CompetitorFilter]

// NewCompetitorState: по умолчанию новые участники сверху.
func NewCompetitorState() *CompetitorState {
	return newState[CompetitorFilter](Sort{Field: FieldCreatedAt, Desc: true}, func(f string) bool {
		return f == FieldCreatedAt
	})
}

// Competitors пересчитывает страницу списка участников.
func Competitors(items []models.Competitor, st *CompetitorState) Page[models.Competitor] {
	return apply(items, st.Filter.Match, competitorCmp(st.Sort.Field, newCollator()), st.Sort, st.Page)
}

// AllCompetitors: тот же порядок, что и в списке, но все страницы сразу (для выгрузки и печати).
func AllCompetitors(items []models.Competitor, st *CompetitorState) []models.Competitor {
	return arrange(items, st.Filter.Match, competitorCmp(st.Sort.Field, newCollator()), st.Sort)
}

func competitorCmp(field string, col *collate.Collator) func(a, b models.Competitor) int {
	switch field {
	case FieldFullName:
		return func(a, b models.Competitor) int { return col.CompareString(a.FullName, b.FullName) }
	case FieldGender:
		// сравниваем подписи, а не значения enum
		return func(a, b models.Competitor) int { return col.CompareString(a.Gender.Label(), b.Gender.Label()) }
	case FieldLevel:
		return func(a, b models.Competitor) int {
			return compareInts(models.LevelIndex(a.Level), models.LevelIndex(b.Level))
		}
	case FieldCity:
		return func(a, b models.Competitor) int { return col.CompareString(a.City, b.City) }
	case FieldMobile:
		return func(a, b models.Competitor) int { return strings.Compare(a.Mobile, b.Mobile) }
	case FieldStatus:
		return func(a, b models.Competitor) int { return col.CompareString(a.Status.Label(), b.Status.Label()) }
	case FieldCreatedAt:
		return func(a, b models.Competitor) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	return nil
}
