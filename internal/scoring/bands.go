package scoring

// Две шкалы существуют независимо: экран оценки (3 уровня) и список результатов (5 диапазонов).

type Band struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var (
	Excellent        = Band{Key: "excellent", Label: "ممتاز", Color: "green"}
	VeryGood         = Band{Key: "very_good", Label: "جيد جداً", Color: "yellow"}
	NeedsImprovement = Band{Key: "needs_improvement", Label: "يحتاج إلى تحسين", Color: "red"}
)

// EvaluationBand: шкала экрана оценки и сертификата.
func EvaluationBand(score float64) Band {
	switch {
	case score >= 95:
		return Excellent
	case score >= 90:
		return VeryGood
	default:
		return NeedsImprovement
	}
}

var (
	ResultExcellent  = Band{Key: "excellent", Label: "ممتاز", Color: "green"}
	ResultVeryGood   = Band{Key: "very_good", Label: "جيد جداً", Color: "blue"}
	ResultGood       = Band{Key: "good", Label: "جيد", Color: "yellow"}
	ResultAcceptable = Band{Key: "acceptable", Label: "مقبول", Color: "orange"}
	ResultWeak       = Band{Key: "weak", Label: "ضعيف", Color: "red"}
)

// ResultBands: все диапазоны списка результатов, от высшего к низшему.
var ResultBands = []Band{ResultExcellent, ResultVeryGood, ResultGood, ResultAcceptable, ResultWeak}

// ResultBand: шкала списка результатов.
func ResultBand(score float64) Band {
	switch {
	case score >= 95:
		return ResultExcellent
	case score >= 90:
		return ResultVeryGood
	case score >= 80:
		return ResultGood
	case score >= 60:
		return ResultAcceptable
	default:
		return ResultWeak
	}
}

func IsResultBand(key string) bool {
	for _, b := range ResultBands {
		if b.Key == key {
			return true
		}
	}
	return false
}
