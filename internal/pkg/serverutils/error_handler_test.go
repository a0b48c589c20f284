package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"report-automation-be/internal/catalog"
	"report-automation-be/internal/dto"
	"report-automation-be/internal/service"
	"report-automation-be/pkg/questionnaire"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrReportNotFound, 404},
		{fmt.Errorf("load: %w", service.ErrSessionNotFound), 404},
		{catalog.ErrFormNotFound, 404},
		{questionnaire.ErrEmptyCatalog, 400},
		{questionnaire.ErrIncompleteMetadata, 400},
		{catalog.ErrNoQuestions, 400},
		{service.ErrEmptyReport, 400},
		{fiber.NewError(fiber.StatusBadRequest, "bad id"), 400},
		{errors.New("disk I/O error"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func serve(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", func(ctx *fiber.Ctx) error { return err })

	resp, rerr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, rerr)
	defer resp.Body.Close()

	raw, rerr := io.ReadAll(resp.Body)
	require.NoError(t, rerr)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestIncompleteCarriesOrdinal(t *testing.T) {
	code, body := serve(t, fmt.Errorf("finalize: %w", &questionnaire.IncompleteError{Ordinal: 3}))

	assert.Equal(t, 422, code)
	assert.Equal(t, false, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["first_unanswered"])
}

func TestValidationErrorListsFields(t *testing.T) {
	err := ValidateRequest(dto.StartSessionRequest{FormName: "Аудит", Year: 1200})
	require.Error(t, err)

	code, body := serve(t, err)
	assert.Equal(t, 400, code)
	fields := body["data"].(map[string]interface{})
	assert.Contains(t, fields, "StartSessionRequest.Month")
	assert.Contains(t, fields, "StartSessionRequest.ReportDate")
	assert.Equal(t, "must be at least 1900", fields["StartSessionRequest.Year"])
}

func TestInternalErrorsAreMasked(t *testing.T) {
	code, body := serve(t, errors.New("constraint failed: secret table detail"))

	assert.Equal(t, 500, code)
	assert.Equal(t, "internal server error", body["message"])
}

func TestValidateAnswerDecisions(t *testing.T) {
	ok := dto.SaveAnswersRequest{Answers: []dto.AnswerInput{
		{Index: 0, Decision: "yes"},
		{Index: 1, Decision: "Нет"},
		{Index: 2},
	}}
	assert.NoError(t, ValidateRequest(ok))

	bad := dto.SaveAnswersRequest{Answers: []dto.AnswerInput{{Index: -1, Decision: "maybe"}}}
	err := ValidateRequest(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}
