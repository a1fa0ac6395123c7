package importer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Spok95/hifz-contest/internal/models"
)

var mobileRe = regexp.MustCompile(`^\d{8,15}$`)

// ValidMobile: от 8 до 15 цифр, ничего больше.
func ValidMobile(s string) bool { return mobileRe.MatchString(s) }

// NormalizeGender переводит токен из файла в значение enum.
func NormalizeGender(token string) (models.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "ذكر", "male", "m":
		return models.Male, nil
	case "أنثى", "انثى", "female", "f":
		return models.Female, nil
	}
	return "", fmt.Errorf("جنس غير صالح: %q", token)
}

const tatweel = 'ـ'

// stripDiacritics убирает огласовки, татвиль и хамзу над/под алифом (через NFD).
func stripDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == tatweel })),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(out), " ")
}

// NormalizeLevel ищет канонический уровень: точное совпадение, затем без огласовок,
// затем по номеру уровня (до ':') и предмету (после '|') по отдельности.
// Нераспознанная строка молча получает последний уровень.
func NormalizeLevel(raw string) string {
	s := strings.TrimSpace(raw)
	if models.IsLevel(s) {
		return s
	}

	bare := stripDiacritics(s)
	for _, l := range models.Levels {
		if stripDiacritics(l) == bare {
			return l
		}
	}

	prefix, suffix, ok := splitLevel(s)
	if ok {
		for _, l := range models.Levels {
			lp, ls, _ := splitLevel(l)
			if lp == prefix && stripDiacritics(ls) == stripDiacritics(suffix) {
				return l
			}
		}
	}

	return models.LowestLevel()
}

func splitLevel(s string) (prefix, suffix string, ok bool) {
	colon := strings.Index(s, ":")
	bar := strings.LastIndex(s, "|")
	if colon < 0 || bar < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:colon]), strings.TrimSpace(s[bar+1:]), true
}
