package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"report-automation-be/internal/catalog"
	"report-automation-be/internal/dto"
	"report-automation-be/internal/entity"
	"report-automation-be/internal/repository/memory"
	"report-automation-be/pkg/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	forms map[string][]entity.Question
}

func (c *fakeCatalog) ListForms() ([]string, error) {
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	return names, nil
}

func (c *fakeCatalog) Load(formName string) ([]entity.Question, error) {
	q, ok := c.forms[formName]
	if !ok {
		return nil, catalog.ErrFormNotFound
	}
	return q, nil
}

type recordingExporter struct {
	exported  [][]entity.Answer
	discarded []string
	err       error
}

func (e *recordingExporter) Export(ctx context.Context, reportName string, meta entity.ReportMetadata, answers []entity.Answer) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.exported = append(e.exported, answers)
	return fmt.Sprintf("/reports/%s_%d.xlsx", meta.FormName, len(e.exported)), nil
}

func (e *recordingExporter) Discard(path string) error {
	e.discarded = append(e.discarded, path)
	return nil
}

// failingReports rejects every Create the way a broken store would.
type failingReports struct {
	IReportService
}

func (failingReports) Create(ctx context.Context, meta entity.ReportMetadata, answers []entity.Answer, filePath string) (int64, error) {
	return 0, errors.New("database is locked")
}

func questions(n int) []entity.Question {
	out := make([]entity.Question, n)
	for i := range out {
		out[i] = entity.Question{
			Text:               fmt.Sprintf("Вопрос %d", i+1),
			StandardReference:  fmt.Sprintf("п. %d", i+1),
			QualityReference:   "СМК",
			DocumentsReference: "Журнал",
		}
	}
	return out
}

type sessionFixture struct {
	svc      ISessionService
	reports  IReportService
	sessions *memory.SessionRepository
	exporter *recordingExporter
}

func newSessionFixture(t *testing.T, reports IReportService) *sessionFixture {
	t.Helper()
	if reports == nil {
		reports = NewReportService(newTestFactory(t), nil, nil, nopLogger())
	}
	cat := &fakeCatalog{forms: map[string][]entity.Question{
		"Аудит":  questions(7),
		"Пустая": {},
	}}
	sessions := memory.NewSessionRepository(time.Hour)
	exporter := &recordingExporter{}
	return &sessionFixture{
		svc:      NewSessionService(cat, sessions, reports, exporter, nopLogger()),
		reports:  reports,
		sessions: sessions,
		exporter: exporter,
	}
}

func startRequest() *dto.StartSessionRequest {
	return &dto.StartSessionRequest{
		FormName:   "Аудит",
		Month:      "Март",
		Year:       2025,
		ReportDate: "14.03.2025",
	}
}

func answerAll(n int, decision string) *dto.SaveAnswersRequest {
	req := &dto.SaveAnswersRequest{}
	for i := 0; i < n; i++ {
		req.Answers = append(req.Answers, dto.AnswerInput{Index: i, Decision: decision})
	}
	return req
}

func TestStartSession(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, block.SessionId)
	assert.Equal(t, "Отчет: Аудит Март 2025", block.ReportName)
	assert.Equal(t, 0, block.Start)
	assert.Equal(t, 5, block.End)
	assert.Equal(t, 7, block.Total)
	assert.True(t, block.IsFirst)
	assert.False(t, block.IsLast)
	require.Len(t, block.Questions, 5)
	assert.Equal(t, 1, block.Questions[0].Ordinal)
	assert.Equal(t, "unset", block.Questions[0].Decision)
	assert.Equal(t, 1, f.sessions.Count())
}

func TestStartSessionRejectsBadInput(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *dto.StartSessionRequest)
		wantErr error
	}{
		{"unknown form", func(r *dto.StartSessionRequest) { r.FormName = "Нет такой" }, catalog.ErrFormNotFound},
		{"empty catalog", func(r *dto.StartSessionRequest) { r.FormName = "Пустая" }, questionnaire.ErrEmptyCatalog},
		{"blank month", func(r *dto.StartSessionRequest) { r.Month = "  " }, questionnaire.ErrIncompleteMetadata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := startRequest()
			tt.mutate(req)
			_, err := f.svc.Start(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, f.sessions.Count())
}

func TestSaveAnswersReportsIgnoredInputs(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)

	res, err := f.svc.SaveAnswers(ctx, block.SessionId, &dto.SaveAnswersRequest{Answers: []dto.AnswerInput{
		{Index: 0, Decision: "yes"},
		{Index: 1, Decision: "Нет", Comment: "нет журнала"},
		{Index: 2, Decision: ""},
		{Index: 6, Decision: "no"},
		{Index: 7, Decision: "yes"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Applied)
	assert.Equal(t, []int{2, 7}, res.Ignored)

	current, err := f.svc.Block(ctx, block.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "yes", current.Questions[0].Decision)
	assert.Equal(t, "no", current.Questions[1].Decision)
	assert.Equal(t, "нет журнала", current.Questions[1].Comment)
	assert.Equal(t, "unset", current.Questions[2].Decision)
}

func TestNavigation(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)
	id := block.SessionId

	prev, err := f.svc.Prev(ctx, id, nil)
	require.NoError(t, err)
	assert.False(t, prev.Moved)
	assert.Equal(t, 0, prev.Block.Start)

	next, err := f.svc.Next(ctx, id, answerAll(5, "yes"))
	require.NoError(t, err)
	assert.True(t, next.Moved)
	assert.Equal(t, 5, next.Block.Start)
	assert.Equal(t, 7, next.Block.End)
	assert.True(t, next.Block.IsLast)
	require.Len(t, next.Block.Questions, 2)

	again, err := f.svc.Next(ctx, id, nil)
	require.NoError(t, err)
	assert.False(t, again.Moved)
	assert.Equal(t, 5, again.Block.Start)

	back, err := f.svc.Prev(ctx, id, nil)
	require.NoError(t, err)
	assert.True(t, back.Moved)
	assert.Equal(t, 0, back.Block.Start)
	assert.Equal(t, "yes", back.Block.Questions[4].Decision)
}

func TestCheckReportsFirstUnanswered(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)
	id := block.SessionId

	_, err = f.svc.SaveAnswers(ctx, id, &dto.SaveAnswersRequest{Answers: []dto.AnswerInput{
		{Index: 0, Decision: "yes"},
		{Index: 1, Decision: "no"},
	}})
	require.NoError(t, err)

	res, err := f.svc.Check(ctx, id)
	require.NoError(t, err)
	assert.False(t, res.Complete)
	assert.Equal(t, 3, res.FirstUnanswered)

	_, err = f.svc.SaveAnswers(ctx, id, answerAll(7, "no"))
	require.NoError(t, err)

	res, err = f.svc.Check(ctx, id)
	require.NoError(t, err)
	assert.True(t, res.Complete)
}

func TestFinalizeIncompleteKeepsSession(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, block.SessionId, answerAll(4, "yes"))

	var incomplete *questionnaire.IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 5, incomplete.Ordinal)
	assert.Empty(t, f.exporter.exported)
	assert.Equal(t, 1, f.sessions.Count())

	list, err := f.reports.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFinalizePersistsAndClosesSession(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)
	id := block.SessionId

	req := answerAll(7, "yes")
	req.Answers[3] = dto.AnswerInput{Index: 3, Decision: "no", Comment: "просрочен"}

	res, err := f.svc.Finalize(ctx, id, req)
	require.NoError(t, err)
	assert.Positive(t, res.ReportId)
	assert.Equal(t, "/reports/Аудит_1.xlsx", res.FilePath)
	assert.Equal(t, "Аудит_1.xlsx", res.FileName)

	require.Len(t, f.exporter.exported, 1)
	assert.Len(t, f.exporter.exported[0], 7)
	assert.Empty(t, f.exporter.discarded)

	_, err = f.svc.Block(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	report, err := f.reports.Show(ctx, res.ReportId)
	require.NoError(t, err)
	assert.Equal(t, res.FilePath, report.FilePath)
	require.Len(t, report.Answers, 7)
	assert.Equal(t, "Вопрос 4", report.Answers[3].QuestionText)
	assert.Equal(t, "Нет", report.Answers[3].Decision)
	assert.Equal(t, "просрочен", report.Answers[3].Comment)
	assert.Equal(t, "п. 4", report.Answers[3].StandardReference)
}

func TestFinalizeDiscardsArtifactWhenStoreFails(t *testing.T) {
	f := newSessionFixture(t, failingReports{})
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, block.SessionId, answerAll(7, "yes"))
	require.Error(t, err)

	require.Len(t, f.exporter.exported, 1)
	assert.Equal(t, []string{"/reports/Аудит_1.xlsx"}, f.exporter.discarded)

	// The answers survive so the operator can retry.
	res, err := f.svc.Check(ctx, block.SessionId)
	require.NoError(t, err)
	assert.True(t, res.Complete)
}

func TestFinalizeExportFailureStoresNothing(t *testing.T) {
	f := newSessionFixture(t, nil)
	f.exporter.err = errors.New("disk full")
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, block.SessionId, answerAll(7, "no"))
	require.Error(t, err)

	list, err := f.reports.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, f.sessions.Count())
}

func TestAbandonAndUnknownSession(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)

	require.NoError(t, f.svc.Abandon(ctx, block.SessionId))
	assert.Zero(t, f.sessions.Count())

	assert.ErrorIs(t, f.svc.Abandon(ctx, block.SessionId), ErrSessionNotFound)
	_, err = f.svc.Next(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Finalize(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcurrentFinalizeStoresOneReport(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()

	block, err := f.svc.Start(ctx, startRequest())
	require.NoError(t, err)
	_, err = f.svc.SaveAnswers(ctx, block.SessionId, answerAll(7, "yes"))
	require.NoError(t, err)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		notFound  int
	)
	for i := 0; i < callers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.svc.Finalize(ctx, block.SessionId, answerAll(7, "no"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSessionNotFound):
				notFound++
			default:
				t.Errorf("unexpected finalize error: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			_, _ = f.svc.Block(ctx, block.SessionId)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, notFound)
	assert.Len(t, f.exporter.exported, 1)
	assert.Empty(t, f.exporter.discarded)
	assert.Zero(t, f.sessions.Count())

	list, err := f.reports.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
