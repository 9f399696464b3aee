package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skills-backend/internal/dto"
	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/pkg/apperror"
)

const internalErrorMessage = "внутренняя ошибка сервера"

// ErrorHandler обрабатывает ошибки централизованно.
// Известные AppError отдаются клиенту как есть, всё остальное маскируется под 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Wrap(err, apperror.ErrCodeInternal, internalErrorMessage)
		}

		entry := logger.Log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"code":       appErr.Code,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		})

		if appErr.HTTPStatus >= http.StatusInternalServerError {
			entry.Error("Request error")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: internalErrorMessage,
				Code:  string(apperror.ErrCodeInternal),
			})
			return
		}

		entry.Debug("Request rejected")
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Error:  appErr.Message,
			Code:   string(appErr.Code),
			Fields: appErr.Fields,
		})
	}
}
