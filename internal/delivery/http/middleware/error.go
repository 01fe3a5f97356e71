package middleware

import (
	"errors"
	"log"

	"job-board/internal/domain"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// FromDomain maps a classified domain error onto its HTTP status.
func FromDomain(err error) *AppError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		var fields interface{}
		if len(ve.Fields) > 0 {
			fields = ve.Fields
		}
		return NewAppError(fiber.StatusBadRequest, ve.Message, fields, err)
	}

	var de *domain.Error
	msg := ""
	if errors.As(err, &de) {
		msg = de.Message
	}

	switch domain.Kind(err) {
	case domain.ErrUnauthenticated:
		return NewAppError(fiber.StatusUnauthorized, msg, nil, err)
	case domain.ErrForbidden:
		return NewAppError(fiber.StatusForbidden, msg, nil, err)
	case domain.ErrNotFound:
		return NewAppError(fiber.StatusNotFound, msg, nil, err)
	case domain.ErrConflict:
		return NewAppError(fiber.StatusConflict, msg, nil, err)
	case domain.ErrValidation:
		return NewAppError(fiber.StatusBadRequest, msg, nil, err)
	default:
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("[HTTP] panic recovered rid=%s path=%s: %v", requestID(c), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logger.Printf("[HTTP] request failed rid=%s method=%s path=%s: %v", requestID(c), c.Method(), c.Path(), err)
		}
		return response.Error(c, status, msg, data)
	}
}

func requestID(c fiber.Ctx) string {
	if rid := c.Get(HeaderRequestID); rid != "" {
		return rid
	}
	return string(c.Response().Header.Peek(HeaderRequestID))
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status := fiberErr.Code
			if status <= 0 || status >= 500 {
				return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
			}
			msg := fiberErr.Message
			if msg == "" {
				msg = response.DefaultMessage(status)
			}
			return status, msg, nil
		}
		appErr = FromDomain(err)
	}

	if appErr.StatusCode <= 0 || appErr.StatusCode >= 500 {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	msg := appErr.Message
	if msg == "" {
		msg = response.DefaultMessage(appErr.StatusCode)
	}
	return appErr.StatusCode, msg, appErr.Data
}
