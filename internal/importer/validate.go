package importer

import (
	"fmt"
	"strings"

	"github.com/Spok95/hifz-contest/internal/models"
)

// ValidationError: ошибка в данных участника, показывается пользователю как есть.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validate проверяет участника, зарегистрированного вручную.
// В отличие от импорта, уровень должен быть каноническим.
func Validate(c models.Competitor) error {
	if strings.TrimSpace(c.FullName) == "" {
		return &ValidationError{Field: "full_name", Reason: "الاسم مطلوب"}
	}
	if !c.Gender.Valid() {
		return &ValidationError{Field: "gender", Reason: fmt.Sprintf("جنس غير صالح: %q", string(c.Gender))}
	}
	if !models.IsLevel(c.Level) {
		return &ValidationError{Field: "level", Reason: fmt.Sprintf("مستوى غير صالح: %q", c.Level)}
	}
	if strings.TrimSpace(c.City) == "" {
		return &ValidationError{Field: "city", Reason: "المدينة مطلوبة"}
	}
	if !ValidMobile(c.Mobile) {
		return &ValidationError{Field: "mobile", Reason: fmt.Sprintf("رقم جوال غير صالح: %s", c.Mobile)}
	}
	return nil
}
