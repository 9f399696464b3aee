package common

import "errors"

// Базовые ошибки хранилища каталога и журнала навыков.
// Репозитории оборачивают их в свои ошибки (ErrSkillNotFound, ErrUserSkillExists),
// сервисы проверяют через errors.Is.
var (
	// ErrNotFound: строка каталога (категория или навык) не найдена.
	ErrNotFound = errors.New("catalog record not found")
	// ErrAlreadyExists: нарушено ограничение уникальности, например пара (user_id, skill_id).
	ErrAlreadyExists = errors.New("record violates a unique constraint")
	// ErrInvalidInput: значение отвергнуто до запроса к БД, например пустой slug.
	ErrInvalidInput = errors.New("invalid catalog input")
)
