package serverutils

import (
	"context"
	"errors"

	"ai-writing-be/internal/editor"
	"ai-writing-be/internal/generator"
	"ai-writing-be/internal/history"
	"ai-writing-be/internal/session"
	"ai-writing-be/pkg/export"
	"ai-writing-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a domain error onto an HTTP status.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErr *ValidationError
	var llmErr *llm.Error

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, session.ErrSuggestionNotFound),
		errors.Is(err, session.ErrDocumentNotFound),
		errors.Is(err, session.ErrExpertNotFound),
		errors.Is(err, history.ErrSnapshotNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrNoSelection),
		errors.Is(err, session.ErrAdvisoryNotApplicable),
		errors.Is(err, editor.ErrInvalidSelection),
		errors.Is(err, generator.ErrEmptyPrompt),
		errors.Is(err, export.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, editor.ErrSelectionStale),
		errors.Is(err, session.ErrDocumentChanged):
		return fiber.StatusConflict
	case errors.Is(err, session.ErrClosed),
		errors.Is(err, session.ErrNotStarted):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, generator.ErrMalformedOutput):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.As(err, &llmErr):
		switch llmErr.Kind {
		case llm.KindRateLimited:
			return fiber.StatusTooManyRequests
		case llm.KindUnavailable, llm.KindTransient:
			return fiber.StatusServiceUnavailable
		case llm.KindInvalidRequest:
			return fiber.StatusBadRequest
		default:
			return fiber.StatusBadGateway
		}
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error returned by a route as an ErrorResponse.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}
