package printout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/hifz-contest/internal/models"
)

var at = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRoster(t *testing.T) {
	var buf bytes.Buffer
	items := []models.Competitor{
		{FullName: "محمد <script>", Gender: models.Male, Level: models.Levels[1], City: "جدة", Status: models.NotEvaluated},
	}
	if err := Roster(&buf, "قائمة المتسابقين", items, at); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"قائمة المتسابقين", "ذكر", models.Levels[1], "لم يتم التقييم", "2026-03-01", "&lt;script&gt;"} {
		if !strings.Contains(out, want) {
			t.Fatalf("в печатной форме нет %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Fatal("имя должно экранироваться")
	}
}

func TestResults(t *testing.T) {
	var buf bytes.Buffer
	items := []models.Result{{
		Evaluation: models.Evaluation{Tanbih: 2, Fateh: 3, Tashkeel: 1, Tajweed: 4, FinalScore: 89, EvaluatorName: "الشيخ"},
		Competitor: models.Competitor{FullName: "عائشة", Gender: models.Female, Level: models.Levels[2]},
	}}
	if err := Results(&buf, "النتائج", items, at); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"عائشة", "<td>أنثى</td>", "<td>2</td><td>3</td><td>1</td><td>4</td>", "89.0", "جيد", "الشيخ"} {
		if !strings.Contains(out, want) {
			t.Fatalf("в печатной форме нет %q", want)
		}
	}
}

func TestCertificate(t *testing.T) {
	var buf bytes.Buffer
	r := models.Result{
		Evaluation: models.Evaluation{Tanbih: 1, Fateh: 1, Tashkeel: 1, Tajweed: 2, FinalScore: 95},
		Competitor: models.Competitor{FullName: "يوسف", Gender: models.Male, Level: models.Levels[0], City: "الدمام"},
	}
	if err := Certificate(&buf, r, at); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"يوسف", "الدمام", "ذكر", "95.0", "ممتاز", "green",
		"<td>1</td><td>1</td><td>1</td><td>2</td>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("в сертификате нет %q", want)
		}
	}
}
