package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/skills-backend/internal/models"
)

// Константы валидации
const (
	MinProficiency = int(models.ProficiencyBeginner)
	MaxProficiency = int(models.ProficiencyMastered)
	MaxNotesLength = 2000
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateProficiency проверяет, что уровень владения в диапазоне 1..5.
func ValidateProficiency(proficiency int) error {
	if !models.Proficiency(proficiency).Valid() {
		return fmt.Errorf("Proficiency must be between %d and %d.", MinProficiency, MaxProficiency)
	}
	return nil
}

// ValidateNotes проверяет заметки к навыку.
func ValidateNotes(notes string) error {
	return ValidateLength("notes", strings.TrimSpace(notes), 0, MaxNotesLength)
}

// ValidateVerified: подтвердить навык можно только с уровнем Advanced и выше.
func ValidateVerified(isVerified bool, proficiency int) error {
	if isVerified && proficiency < int(models.MinVerifiedProficiency) {
		return errors.New("Cannot mark skill as verified unless proficiency is 3+.")
	}
	return nil
}

// FieldErrors превращает ошибки биндинга gin в карту поле -> сообщения.
// Имена полей берутся из json-тегов (см. RegisterJSONTagNames).
func FieldErrors(err error) map[string][]string {
	out := make(map[string][]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		out[typeErr.Field] = []string{fmt.Sprintf("Incorrect type. Expected %s.", typeErr.Type.String())}
		return out
	}

	if err != nil {
		out["non_field_errors"] = []string{err.Error()}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min", "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "datetime":
		return fmt.Sprintf("Date has wrong format. Use %s.", fe.Param())
	default:
		return fmt.Sprintf("Field validation failed on the '%s' tag.", fe.Tag())
	}
}
