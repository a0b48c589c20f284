package serverutils

import (
	"errors"

	"report-automation-be/internal/catalog"
	"report-automation-be/internal/service"
	"report-automation-be/pkg/questionnaire"

	"github.com/gofiber/fiber/v2"
)

type incompleteData struct {
	FirstUnanswered int `json:"first_unanswered"`
}

// ErrorHandlerMiddleware turns errors returned by handlers into JSON responses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, err)
	}
}

func WriteError(ctx *fiber.Ctx, err error) error {
	var incomplete *questionnaire.IncompleteError
	if errors.As(err, &incomplete) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(
			ErrorResponseWithData(fiber.StatusUnprocessableEntity, err.Error(), incompleteData{FirstUnanswered: incomplete.Ordinal}),
		)
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(
			ErrorResponseWithData(fiber.StatusBadRequest, "validation failed", validationErr.Fields),
		)
	}

	code := StatusFor(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, catalog.ErrFormNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, questionnaire.ErrEmptyCatalog),
		errors.Is(err, questionnaire.ErrIncompleteMetadata),
		errors.Is(err, catalog.ErrNoQuestions),
		errors.Is(err, service.ErrEmptyReport):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
