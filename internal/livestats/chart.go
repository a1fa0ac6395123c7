package livestats

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderLevelChart рисует PNG со столбцами по уровням.
// Подписи это номера уровней, встроенный шрифт не содержит арабских глифов.
func RenderLevelChart(w io.Writer, s Stats) error {
	bars := make([]chart.Value, 0, len(s.Levels))
	top := 1
	for i, l := range s.Levels {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("L%d (%d)", i+1, l.Count),
			Value: float64(l.Count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2E7D32"),
				StrokeColor: drawing.ColorFromHex("1B5E20"),
				StrokeWidth: 1,
			},
		})
		top = max(top, l.Count)
	}

	graph := chart.BarChart{
		Width:      800,
		Height:     400,
		BarWidth:   70,
		BarSpacing: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			// явный диапазон: при нулевых данных авто-диапазон вырождается
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
