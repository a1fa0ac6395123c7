package scoring

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name string
		in   Counts
		want float64
	}{
		{"clean", Counts{}, 100},
		{"five_tanbih", Counts{Tanbih: 5}, 95},
		{"five_fateh", Counts{Fateh: 5}, 90},
		{"ten_tajweed", Counts{Tajweed: 10}, 95},
		{"odd_tajweed", Counts{Tajweed: 3}, 98.5},
		{"mixed", Counts{Tanbih: 2, Fateh: 1, Tashkeel: 3, Tajweed: 1}, 92.5},
		{"floor_at_zero", Counts{Fateh: 1000}, 0},
		{"exactly_zero", Counts{Tanbih: 100}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.in); got != tc.want {
				t.Fatalf("Score(%+v) = %v, ожидали %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestScore_OneDecimal(t *testing.T) {
	for tj := 0; tj < 50; tj++ {
		for tn := 0; tn < 10; tn++ {
			s := Score(Counts{Tanbih: tn, Tajweed: tj})
			if r := math.Round(s*10) / 10; r != s {
				t.Fatalf("балл %v не округлён до одного знака", s)
			}
			if s < 0 {
				t.Fatalf("отрицательный балл %v", s)
			}
		}
	}
}

func TestCounts_DecNeverNegative(t *testing.T) {
	var c Counts
	c.Dec(Fateh)
	c.Inc(Fateh)
	c.Inc(Fateh)
	c.Dec(Fateh)
	c.Dec(Fateh)
	c.Dec(Fateh)
	if c.Fateh != 0 {
		t.Fatalf("fateh = %d", c.Fateh)
	}
	c.Inc("unknown")
	if c != (Counts{}) {
		t.Fatalf("неизвестная категория изменила счётчики: %+v", c)
	}
}

func TestClamp(t *testing.T) {
	got := Counts{Tanbih: -3, Fateh: 2, Tashkeel: -1, Tajweed: 4}.Clamp()
	want := Counts{Fateh: 2, Tajweed: 4}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestEvaluationBand(t *testing.T) {
	cases := map[float64]string{
		100: "excellent", 95: "excellent", 94.9: "very_good", 90: "very_good", 89.5: "needs_improvement", 0: "needs_improvement",
	}
	for score, want := range cases {
		if got := EvaluationBand(score).Key; got != want {
			t.Errorf("EvaluationBand(%v) = %s, ожидали %s", score, got, want)
		}
	}
}

func TestResultBand(t *testing.T) {
	cases := map[float64]string{
		95: "excellent", 92: "very_good", 80: "good", 79.9: "acceptable", 60: "acceptable", 59.5: "weak",
	}
	for score, want := range cases {
		if got := ResultBand(score).Key; got != want {
			t.Errorf("ResultBand(%v) = %s, ожидали %s", score, got, want)
		}
	}
	if !IsResultBand("good") || IsResultBand("needs_improvement") {
		t.Fatal("IsResultBand")
	}
}
