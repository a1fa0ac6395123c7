// Package scoring считает итоговый балл по количеству ошибок и раскладывает его по диапазонам.
package scoring

import "math"

const (
	Baseline = 100.0

	TanbihWeight   = 1.0
	FatehWeight    = 2.0
	TashkeelWeight = 1.0
	TajweedWeight  = 0.5
)

// Counts: счётчики ошибок по четырём категориям.
type Counts struct {
	Tanbih   int `json:"tanbih"`
	Fateh    int `json:"fateh"`
	Tashkeel int `json:"tashkeel"`
	Tajweed  int `json:"tajweed"`
}

type Category string

const (
	Tanbih   Category = "tanbih"
	Fateh    Category = "fateh"
	Tashkeel Category = "tashkeel"
	Tajweed  Category = "tajweed"
)

func (c Category) Valid() bool {
	switch c {
	case Tanbih, Fateh, Tashkeel, Tajweed:
		return true
	}
	return false
}

func (c *Counts) slot(cat Category) *int {
	switch cat {
	case Tanbih:
		return &c.Tanbih
	case Fateh:
		return &c.Fateh
	case Tashkeel:
		return &c.Tashkeel
	case Tajweed:
		return &c.Tajweed
	}
	return nil
}

// Inc увеличивает счётчик категории на единицу.
func (c *Counts) Inc(cat Category) {
	if p := c.slot(cat); p != nil {
		*p++
	}
}

// Dec уменьшает счётчик, но не ниже нуля.
func (c *Counts) Dec(cat Category) {
	if p := c.slot(cat); p != nil && *p > 0 {
		*p--
	}
}

// Clamp обнуляет отрицательные значения.
func (c Counts) Clamp() Counts {
	return Counts{
		Tanbih:   max(c.Tanbih, 0),
		Fateh:    max(c.Fateh, 0),
		Tashkeel: max(c.Tashkeel, 0),
		Tajweed:  max(c.Tajweed, 0),
	}
}

func (c Counts) Deduction() float64 {
	return float64(c.Tanbih)*TanbihWeight +
		float64(c.Fateh)*FatehWeight +
		float64(c.Tashkeel)*TashkeelWeight +
		float64(c.Tajweed)*TajweedWeight
}

// Score = max(0, round1(100 - deduction)).
func Score(c Counts) float64 {
	s := round1(Baseline - c.Deduction())
	if s < 0 {
		return 0
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
