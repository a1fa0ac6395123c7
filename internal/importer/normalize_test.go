package importer

import (
	"errors"
	"testing"

	"github.com/Spok95/hifz-contest/internal/models"
)

func TestNormalizeGender(t *testing.T) {
	cases := map[string]models.Gender{
		"ذكر": models.Male, "male": models.Male, "MALE": models.Male, " m ": models.Male,
		"أنثى": models.Female, "انثى": models.Female, "Female": models.Female, "F": models.Female,
	}
	for in, want := range cases {
		got, err := NormalizeGender(in)
		if err != nil || got != want {
			t.Errorf("NormalizeGender(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := NormalizeGender("boy"); err == nil {
		t.Fatal("ожидали ошибку для неизвестного токена")
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"exact", models.Levels[1], models.Levels[1]},
		{"padded", "  " + models.Levels[2] + " ", models.Levels[2]},
		{"without_shadda", "المستوى الخامس: جزءان | جزء عم وجزء تبارك", models.Levels[4]},
		{"plain_alef", "المستوى الاول: 30 جزءا | القران الكريم كاملا", models.Levels[0]},
		{"structural", "المستوى الرابع: خمسة أجزاء | من سورة الناس إلى سورة المجادلة", models.Levels[3]},
		{"structural_suffix_diacritics", "المستوى الثاني: عشرون | مِنْ سورةِ الناس إلى سورة الكهف", models.Levels[1]},
		{"unknown", "level 9", models.Levels[4]},
		{"prefix_mismatch", "المستوى العاشر: 3 | القرآن الكريم كاملاً", models.Levels[4]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLevel(tc.in); got != tc.want {
				t.Fatalf("NormalizeLevel(%q) = %q, ожидали %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidMobile(t *testing.T) {
	ok := []string{"12345678", "123456789012345", "0501234567"}
	bad := []string{"1234567", "1234567890123456", "+966501234567", "05012 34567", ""}
	for _, s := range ok {
		if !ValidMobile(s) {
			t.Errorf("%q должен быть валидным", s)
		}
	}
	for _, s := range bad {
		if ValidMobile(s) {
			t.Errorf("%q не должен быть валидным", s)
		}
	}
}

func TestValidate(t *testing.T) {
	good := models.Competitor{FullName: "Ali", Gender: models.Male, Level: models.Levels[0], City: "Riyadh", Mobile: "0501234567"}
	if err := Validate(good); err != nil {
		t.Fatal(err)
	}
	bad := good
	bad.Level = "whatever"
	if err := Validate(bad); err == nil {
		t.Fatal("ручная регистрация требует канонический уровень")
	}
	bad = good
	bad.Mobile = "abc"
	var ve *ValidationError
	if err := Validate(bad); !errors.As(err, &ve) || ve.Field != "mobile" {
		t.Fatalf("ожидали ошибку телефона, получили %v", err)
	}
}
