package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"

	"github.com/Spok95/hifz-contest/internal/models"
)

func fakeCompetitors(n int) []models.Competitor {
	f := gofakeit.New(42)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]models.Competitor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Competitor{
			ID:        fmt.Sprintf("c-%03d", i),
			FullName:  f.Name(),
			Gender:    models.Gender(f.RandomString([]string{"male", "female"})),
			Level:     models.Levels[i%len(models.Levels)],
			City:      f.City(),
			Mobile:    f.Phone(),
			Status:    models.NotEvaluated,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestMatchSearch(t *testing.T) {
	cases := []struct {
		name, person, mobile, q string
		want                    bool
	}{
		{"token_reorder", "Ahmad Ali Hassan", "0500000001", "ali ahmad", true},
		{"token_prefix_in_word", "Alice Ahmadiyya", "0500000002", "ali ahmad", true},
		{"missing_token", "Alice Hassan", "0500000003", "ali ahmad", false},
		{"case_insensitive_substring", "Mohammed Saleh", "0500000004", "MED SAL", true},
		{"mobile_substring", "Omar", "0551234567", "12345", true},
		{"mobile_no_match", "Omar", "0551234567", "999", false},
		{"arabic_tokens", "محمد عبد الله", "0500000005", "الله محمد", true},
		{"empty_query", "Anyone", "0500000006", "   ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := models.Competitor{FullName: tc.person, Mobile: tc.mobile}
			if got := MatchSearch(c, tc.q); got != tc.want {
				t.Fatalf("MatchSearch(%q, %q) = %v", tc.person, tc.q, got)
			}
		})
	}
}

func TestCompetitorFilter_AndComposition(t *testing.T) {
	c := models.Competitor{FullName: "Zaid", Gender: models.Male, Level: models.Levels[1], Status: models.Evaluated}
	if !(CompetitorFilter{}).Match(c) {
		t.Fatal("пустой фильтр должен пропускать всё")
	}
	if !(CompetitorFilter{Gender: models.Male, Level: models.Levels[1], Status: models.Evaluated}).Match(c) {
		t.Fatal("все условия совпадают")
	}
	if (CompetitorFilter{Gender: models.Male, Status: models.NotEvaluated}).Match(c) {
		t.Fatal("статус не совпадает")
	}
	if (CompetitorFilter{Search: "Amr", Gender: models.Male}).Match(c) {
		t.Fatal("поиск не совпадает")
	}
}

func TestPagination_TotalPagesAndReset(t *testing.T) {
	items := fakeCompetitors(120)
	st := NewCompetitorState()

	p := Competitors(items, st)
	if p.TotalPages != 3 || p.TotalItems != 120 || len(p.Items) != 50 {
		t.Fatalf("pages=%d items=%d len=%d", p.TotalPages, p.TotalItems, len(p.Items))
	}

	st.SetPage(3)
	if p := Competitors(items, st); p.Page != 3 || len(p.Items) != 20 {
		t.Fatalf("страница 3: page=%d len=%d", p.Page, len(p.Items))
	}

	st.SortBy(FieldFullName)
	if st.Page != 3 {
		t.Fatalf("смена сортировки не должна сбрасывать страницу, page=%d", st.Page)
	}

	st.SetFilter(CompetitorFilter{Search: "a"})
	if st.Page != 1 {
		t.Fatalf("смена поиска должна сбросить страницу, page=%d", st.Page)
	}

	st.SetPage(2)
	st.SetFilter(CompetitorFilter{Search: "a"})
	if st.Page != 2 {
		t.Fatalf("тот же фильтр не меняет страницу, page=%d", st.Page)
	}
	st.SetFilter(CompetitorFilter{Search: "a", Gender: models.Female})
	if st.Page != 1 {
		t.Fatalf("смена фильтра пола должна сбросить страницу, page=%d", st.Page)
	}
}

func TestPagination_ClampsPage(t *testing.T) {
	st := NewCompetitorState()
	st.SetPage(9)
	p := Competitors(fakeCompetitors(10), st)
	if p.Page != 1 || p.TotalPages != 1 {
		t.Fatalf("page=%d total=%d", p.Page, p.TotalPages)
	}
	p = Competitors(nil, st)
	if p.Page != 1 || p.TotalPages != 0 || len(p.Items) != 0 {
		t.Fatalf("пустой список: %+v", p)
	}
}

func TestSortBy_Toggle(t *testing.T) {
	st := NewCompetitorState()
	if st.Sort != (Sort{Field: FieldCreatedAt, Desc: true}) {
		t.Fatalf("по умолчанию: %+v", st.Sort)
	}
	st.SortBy(FieldCity)
	if st.Sort != (Sort{Field: FieldCity}) {
		t.Fatalf("новое поле по возрастанию: %+v", st.Sort)
	}
	st.SortBy(FieldCity)
	if !st.Sort.Desc {
		t.Fatal("повторный клик меняет направление")
	}

	rs := NewResultState()
	rs.SortBy(FieldCity)
	rs.SortBy(FieldFinalScore)
	if rs.Sort != (Sort{Field: FieldFinalScore, Desc: true}) {
		t.Fatalf("балл начинается по убыванию: %+v", rs.Sort)
	}
}

func TestSortByLabels(t *testing.T) {
	items := []models.Competitor{
		{ID: "1", Status: models.Evaluated},
		{ID: "2", Status: models.NotEvaluated},
		{ID: "3", Status: models.Evaluated},
	}
	st := NewCompetitorState()
	st.SetSort(FieldStatus, false)
	p := Competitors(items, st)
	got := []string{p.Items[0].ID, p.Items[1].ID, p.Items[2].ID}
	if diff := cmp.Diff([]string{"1", "3", "2"}, got); diff != "" {
		t.Fatalf("сортировка по подписи статуса (-want +got):\n%s", diff)
	}

	st.SetSort(FieldGender, false)
	items = []models.Competitor{{ID: "m", Gender: models.Male}, {ID: "f", Gender: models.Female}}
	p = Competitors(items, st)
	if p.Items[0].ID != "f" {
		t.Fatalf("ожидали أنثى первой, получили %s", p.Items[0].ID)
	}
}

func TestSortStableDesc(t *testing.T) {
	items := []models.Competitor{
		{ID: "a", City: "Riyadh"},
		{ID: "b", City: "Jeddah"},
		{ID: "c", City: "Riyadh"},
	}
	st := NewCompetitorState()
	st.SetSort(FieldCity, true)
	p := Competitors(items, st)
	got := []string{p.Items[0].ID, p.Items[1].ID, p.Items[2].ID}
	if diff := cmp.Diff([]string{"a", "c", "b"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPageButtons(t *testing.T) {
	btn := func(p int) PageButton { return PageButton{Page: p} }
	cur := func(p int) PageButton { return PageButton{Page: p, Current: true} }
	gap := PageButton{Ellipsis: true}

	cases := []struct {
		name           string
		current, total int
		want           []PageButton
	}{
		{"empty", 1, 0, []PageButton{}},
		{"small", 2, 3, []PageButton{btn(1), cur(2), btn(3)}},
		{"middle", 10, 20, []PageButton{btn(1), btn(2), btn(3), gap, btn(9), cur(10), btn(11), gap, btn(18), btn(19), btn(20)}},
		{"near_start", 2, 12, []PageButton{btn(1), cur(2), btn(3), gap, btn(10), btn(11), btn(12)}},
		{"adjacent_window", 5, 9, []PageButton{btn(1), btn(2), btn(3), btn(4), cur(5), btn(6), btn(7), btn(8), btn(9)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, PageButtons(tc.current, tc.total)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelection(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("a")
	if diff := cmp.Diff([]string{"b"}, s.IDs()); diff != "" {
		t.Fatal(diff)
	}

	page := []string{"b", "c", "d"}
	s.TogglePage(page)
	if diff := cmp.Diff([]string{"b", "c", "d"}, s.IDs()); diff != "" {
		t.Fatal(diff)
	}
	s.TogglePage(page)
	if s.Len() != 0 {
		t.Fatalf("повторный выбор страницы должен снять выбор, осталось %v", s.IDs())
	}

	s.Toggle("z")
	s.Clear()
	if s.Len() != 0 || s.Has("z") {
		t.Fatal("Clear")
	}
}
