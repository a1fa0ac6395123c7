package export

import (
	"io"

	"github.com/Spok95/hifz-contest/internal/models"
	"github.com/Spok95/hifz-contest/internal/scoring"
)

var resultsHeader = []string{
	"الاسم", "الجنس", "المستوى", "المدينة",
	"التنبيه", "الفتح", "التشكيل", "التجويد",
	"الدرجة", "التقدير", "المقيّم", "آخر تحديث",
}

// Results пишет таблицу результатов и второй лист со сводкой по диапазонам.
func Results(w io.Writer, results []models.Result) error {
	rows := make([][]any, 0, len(results))
	perBand := make(map[string]int, len(scoring.ResultBands))
	for _, r := range results {
		band := scoring.ResultBand(r.FinalScore)
		perBand[band.Key]++
		rows = append(rows, []any{
			r.Competitor.FullName,
			r.Competitor.Gender.Label(),
			r.Competitor.Level,
			r.Competitor.City,
			r.Tanbih,
			r.Fateh,
			r.Tashkeel,
			r.Tajweed,
			r.FinalScore,
			band.Label,
			r.EvaluatorName,
			r.UpdatedAt.Format(dateLayout),
		})
	}

	summary := make([][]any, 0, len(scoring.ResultBands))
	for _, b := range scoring.ResultBands {
		summary = append(summary, []any{b.Label, perBand[b.Key]})
	}

	return writeWorkbook(w,
		sheet{Title: "النتائج", Header: resultsHeader, Rows: rows},
		sheet{Title: "ملخص", Header: []string{"التقدير", "العدد"}, Rows: summary},
	)
}
