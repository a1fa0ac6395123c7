// Package listing строит производные представления списков: фильтр, сортировка, страницы.
// Все стадии пересчитываются с нуля на каждый запрос.
package listing

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const PageSize = 50

type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// State: состояние списка: фильтр, сортировка, текущая страница.
// F должен быть сравнимым, чтобы замечать смену фильтра.
type State[F comparable] struct {
	Filter F
	Sort   Sort
	Page   int

	descFirst func(field string) bool
}

func newState[F comparable](def Sort, descFirst func(string) bool) *State[F] {
	return &State[F]{Sort: def, Page: 1, descFirst: descFirst}
}

// SetFilter меняет фильтр; при любом изменении страница сбрасывается на первую.
func (s *State[F]) SetFilter(f F) {
	if f == s.Filter {
		return
	}
	s.Filter = f
	s.Page = 1
}

// SortBy: клик по заголовку: то же поле меняет направление,
// новое поле начинает по возрастанию (для баллов и дат по убыванию). Страница не меняется.
func (s *State[F]) SortBy(field string) {
	if s.Sort.Field == field {
		s.Sort.Desc = !s.Sort.Desc
		return
	}
	s.Sort = Sort{Field: field, Desc: s.descFirst != nil && s.descFirst(field)}
}

// SetSort задаёт сортировку явно. Страница не меняется.
func (s *State[F]) SetSort(field string, desc bool) {
	s.Sort = Sort{Field: field, Desc: desc}
}

func (s *State[F]) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	s.Page = p
}

type Page[T any] struct {
	Items      []T          `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalItems int          `json:"total_items"`
	TotalPages int          `json:"total_pages"`
	Sort       Sort         `json:"sort"`
	Buttons    []PageButton `json:"buttons"`
}

func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// arrange: фильтр -> стабильная сортировка, без деления на страницы.
func arrange[T any](items []T, match func(T) bool, cmp func(a, b T) int, sort Sort) []T {
	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			filtered = append(filtered, it)
		}
	}

	if cmp != nil {
		if sort.Desc {
			slices.SortStableFunc(filtered, func(a, b T) int { return cmp(b, a) })
		} else {
			slices.SortStableFunc(filtered, cmp)
		}
	}
	return filtered
}

// apply: фильтр -> стабильная сортировка -> страница.
func apply[T any](items []T, match func(T) bool, cmp func(a, b T) int, sort Sort, page int) Page[T] {
	filtered := arrange(items, match, cmp, sort)

	total := TotalPages(len(filtered))
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	from := (page - 1) * PageSize
	to := min(from+PageSize, len(filtered))
	pageItems := []T{}
	if from < to {
		pageItems = filtered[from:to]
	}

	return Page[T]{
		Items:      pageItems,
		Page:       page,
		PageSize:   PageSize,
		TotalItems: len(filtered),
		TotalPages: total,
		Sort:       sort,
		Buttons:    PageButtons(page, total),
	}
}

// PageButton: кнопка страницы; Ellipsis=true вместо пропущенного диапазона.
type PageButton struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageButtons: первые 3, последние 3 и текущая±1, остальное схлопывается в многоточие.
func PageButtons(current, total int) []PageButton {
	out := []PageButton{}
	gap := false
	for i := 1; i <= total; i++ {
		if i <= 3 || i > total-3 || (i >= current-1 && i <= current+1) {
			out = append(out, PageButton{Page: i, Current: i == current})
			gap = false
			continue
		}
		if !gap {
			out = append(out, PageButton{Ellipsis: true})
			gap = true
		}
	}
	return out
}

// collator не потокобезопасен, создаём на каждый пересчёт.
func newCollator() *collate.Collator {
	return collate.New(language.Arabic, collate.IgnoreCase)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
