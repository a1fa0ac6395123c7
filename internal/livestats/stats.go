// Package livestats считает сводку для живого экрана: прогресс, распределения, вехи.
package livestats

import (
	"math"
	"sort"
	"time"

	"github.com/Spok95/hifz-contest/internal/models"
)

const topCities = 10

type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type Milestone struct {
	Key     string `json:"key,omitempty"`
	Message string `json:"message,omitempty"`
}

var (
	MilestoneNone     = Milestone{}
	MilestoneHalfway  = Milestone{Key: "halfway", Message: "وصلنا إلى منتصف الطريق! تم تقييم نصف المتسابقين"}
	MilestoneFinal    = Milestone{Key: "final_stretch", Message: "المرحلة الأخيرة! تم تقييم ثلاثة أرباع المتسابقين"}
	MilestoneComplete = Milestone{Key: "complete", Message: "تم بحمد الله تقييم جميع المتسابقين"}
)

type Stats struct {
	Gender    models.Gender `json:"gender,omitempty"`
	Total     int           `json:"total"`
	Evaluated int           `json:"evaluated"`
	Waiting   int           `json:"waiting"`
	Male      int           `json:"male"`
	Female    int           `json:"female"`
	Levels    []LevelCount  `json:"levels"`
	Cities    []CityCount   `json:"cities"`
	Today     int           `json:"today"`
	Progress  int           `json:"progress"`
	Milestone Milestone     `json:"milestone"`
}

// Progress = round(evaluated/total*100), 0 при пустом списке.
func Progress(evaluated, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(evaluated) / float64(total) * 100))
}

func MilestoneFor(progress int) Milestone {
	switch {
	case progress >= 100:
		return MilestoneComplete
	case progress >= 75:
		return MilestoneFinal
	case progress >= 50:
		return MilestoneHalfway
	}
	return MilestoneNone
}

// Compute строит сводку по всем участникам и оценкам.
// "Сегодня" означает календарный день now в его локации.
func Compute(comps []models.Competitor, evals []models.Evaluation, now time.Time) Stats {
	s := Stats{
		Total:     len(comps),
		Evaluated: len(evals),
	}
	s.Waiting = s.Total - s.Evaluated

	levels := make(map[string]int, len(models.Levels))
	cities := make(map[string]int)
	for _, c := range comps {
		switch c.Gender {
		case models.Male:
			s.Male++
		case models.Female:
			s.Female++
		}
		levels[c.Level]++
		cities[c.City]++
	}

	s.Levels = make([]LevelCount, 0, len(models.Levels))
	for _, l := range models.Levels {
		s.Levels = append(s.Levels, LevelCount{Level: l, Count: levels[l]})
	}

	s.Cities = make([]CityCount, 0, len(cities))
	for city, n := range cities {
		s.Cities = append(s.Cities, CityCount{City: city, Count: n})
	}
	sort.Slice(s.Cities, func(i, j int) bool {
		if s.Cities[i].Count != s.Cities[j].Count {
			return s.Cities[i].Count > s.Cities[j].Count
		}
		return s.Cities[i].City < s.Cities[j].City
	})
	if len(s.Cities) > topCities {
		s.Cities = s.Cities[:topCities]
	}

	y, m, d := now.Date()
	loc := now.Location()
	for _, e := range evals {
		ey, em, ed := e.CreatedAt.In(loc).Date()
		if ey == y && em == m && ed == d {
			s.Today++
		}
	}

	s.Progress = Progress(s.Evaluated, s.Total)
	s.Milestone = MilestoneFor(s.Progress)
	return s
}

// Project: приближённая сводка по одному полу: каждая корзина умножается на долю пола
// и округляется отдельно, поэтому суммы могут не сходиться с итогом.
func Project(s Stats, g models.Gender) Stats {
	count := s.Male
	if g == models.Female {
		count = s.Female
	}
	ratio := 0.0
	if s.Total > 0 {
		ratio = float64(count) / float64(s.Total)
	}
	scale := func(n int) int { return int(math.Round(float64(n) * ratio)) }

	p := Stats{
		Gender:    g,
		Total:     count,
		Evaluated: scale(s.Evaluated),
		Waiting:   scale(s.Waiting),
		Today:     scale(s.Today),
	}
	if g == models.Female {
		p.Female = count
	} else {
		p.Male = count
	}

	p.Levels = make([]LevelCount, len(s.Levels))
	for i, l := range s.Levels {
		p.Levels[i] = LevelCount{Level: l.Level, Count: scale(l.Count)}
	}
	p.Cities = make([]CityCount, len(s.Cities))
	for i, c := range s.Cities {
		p.Cities[i] = CityCount{City: c.City, Count: scale(c.Count)}
	}

	p.Progress = Progress(p.Evaluated, p.Total)
	p.Milestone = MilestoneFor(p.Progress)
	return p
}
