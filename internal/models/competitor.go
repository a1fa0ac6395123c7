package models

import (
	"strings"
	"time"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func (g Gender) Valid() bool { return g == Male || g == Female }

// Label: подпись для интерфейса и печати.
func (g Gender) Label() string {
	switch g {
	case Male:
		return "ذكر"
	case Female:
		return "أنثى"
	}
	return string(g)
}

type Status string

const (
	NotEvaluated Status = "not_evaluated"
	Evaluated    Status = "evaluated"
)

func (s Status) Valid() bool { return s == NotEvaluated || s == Evaluated }

func (s Status) Label() string {
	switch s {
	case NotEvaluated:
		return "لم يتم التقييم"
	case Evaluated:
		return "تم التقييم"
	}
	return string(s)
}

// Levels: пять фиксированных уровней конкурса, от старшего к младшему.
// Формат строки: "<номер уровня>: <объём> | <предмет>".
var Levels = []string{
	"المستوى الأول: 30 جزءاً | القرآن الكريم كاملاً",
	"المستوى الثاني: 20 جزءاً | من سورة الناس إلى سورة الكهف",
	"المستوى الثالث: 10 أجزاء | من سورة الناس إلى سورة سبأ",
	"المستوى الرابع: 5 أجزاء | من سورة الناس إلى سورة المجادلة",
	"المستوى الخامس: جزءان | جزء عمّ وجزء تبارك",
}

// LowestLevel: уровень по умолчанию при импорте нераспознанной строки.
func LowestLevel() string { return Levels[len(Levels)-1] }

func IsLevel(s string) bool {
	for _, l := range Levels {
		if l == s {
			return true
		}
	}
	return false
}

// LevelIndex возвращает позицию уровня в Levels или -1.
func LevelIndex(s string) int {
	for i, l := range Levels {
		if l == s {
			return i
		}
	}
	return -1
}

type Competitor struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Gender    Gender    `db:"gender" json:"gender"`
	Level     string    `db:"level" json:"level"`
	City      string    `db:"city" json:"city"`
	Mobile    string    `db:"mobile" json:"mobile"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DuplicateKey: ключ уникальности участника. Телефон в ключ не входит.
type DuplicateKey struct {
	FullName string
	Gender   Gender
	Level    string
	City     string
}

func (c Competitor) Key() DuplicateKey {
	return DuplicateKey{
		FullName: strings.TrimSpace(c.FullName),
		Gender:   c.Gender,
		Level:    c.Level,
		City:     strings.TrimSpace(c.City),
	}
}
