package common

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skills-backend/internal/validation"
)

// BindAndValidate binds JSON request and returns properly formatted error.
// Битый JSON даёт INVALID_REQUEST, нарушение binding-тегов даёт VALIDATION_ERROR с ошибками по полям.
func BindAndValidate(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.As(err, &syntaxErr) {
		return apperror.Wrap(err, apperror.ErrCodeInvalidRequest, "некорректное тело запроса").
			WithField(apperror.NonFieldErrors, "Malformed JSON body.")
	}

	appErr := apperror.Wrap(err, apperror.ErrCodeValidation, "ошибка валидации запроса")
	appErr.Fields = validation.FieldErrors(err)
	return appErr
}

// RequiredInt64Query читает обязательный целочисленный query-параметр.
func RequiredInt64Query(c *gin.Context, key string) (int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, apperror.InvalidRequest(key, "This parameter is required.")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.InvalidRequest(key, "Must be a valid integer.")
	}
	return v, nil
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}
