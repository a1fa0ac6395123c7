package export

import (
	"io"

	"github.com/Spok95/hifz-contest/internal/models"
)

var rosterHeader = []string{"الاسم", "الجنس", "المستوى", "المدينة", "الجوال", "الحالة", "تاريخ التسجيل"}

// Roster пишет список участников в порядке, в котором он пришёл (уже отфильтрован и отсортирован).
func Roster(w io.Writer, comps []models.Competitor) error {
	rows := make([][]any, 0, len(comps))
	for _, c := range comps {
		rows = append(rows, []any{
			c.FullName,
			c.Gender.Label(),
			c.Level,
			c.City,
			c.Mobile,
			c.Status.Label(),
			c.CreatedAt.Format(dateLayout),
		})
	}
	return writeWorkbook(w, sheet{Title: "المتسابقون", Header: rosterHeader, Rows: rows})
}
