package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeDuplicateRecord ErrorCode = "DUPLICATE_RECORD"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// NonFieldErrors ключ для ошибок, не относящихся к конкретному полю.
const NonFieldErrors = "non_field_errors"

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	// Fields содержит ошибки по полям запроса: поле -> сообщения.
	Fields map[string][]string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithField добавляет сообщение к ошибкам поля и возвращает ту же ошибку.
func (e *AppError) WithField(field, message string) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// InvalidRequest создаёт ошибку некорректного запроса с привязкой к полю.
func InvalidRequest(field, message string) *AppError {
	return New(ErrCodeInvalidRequest, message).WithField(field, message)
}

// Validation создаёт ошибку бизнес-валидации с привязкой к полю.
func Validation(field, message string) *AppError {
	return New(ErrCodeValidation, message).WithField(field, message)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidRequest, ErrCodeValidation, ErrCodeDuplicateRecord:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func IsInvalidRequest(err error) bool {
	return hasCode(err, ErrCodeInvalidRequest)
}

func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

func IsDuplicate(err error) bool {
	return hasCode(err, ErrCodeDuplicateRecord)
}

var (
	ErrCategoryNotFound = New(ErrCodeNotFound, "категория не найдена")
	ErrSkillNotFound    = New(ErrCodeNotFound, "навык не найден")
)

// ErrDuplicateUserSkill возвращает ошибку повторной записи навыка пользователя.
// Сообщение совпадает с тем, что ожидают клиенты API.
func ErrDuplicateUserSkill(cause error) *AppError {
	const msg = "User already has this skill recorded."
	return Wrap(cause, ErrCodeDuplicateRecord, msg).WithField(NonFieldErrors, msg)
}
