package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"report-automation-be/internal/dto"
	"report-automation-be/internal/entity"
	"report-automation-be/internal/pkg/logger"
	"report-automation-be/internal/repository/memory"
	"report-automation-be/pkg/questionnaire"

	"github.com/google/uuid"
)

type ISessionService interface {
	ListForms(ctx context.Context) (*dto.FormListResponse, error)
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionBlockResponse, error)
	Block(ctx context.Context, sessionId string) (*dto.SessionBlockResponse, error)
	SaveAnswers(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.SaveAnswersResponse, error)
	Next(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.NavigateResponse, error)
	Prev(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.NavigateResponse, error)
	Check(ctx context.Context, sessionId string) (*dto.CompletenessResponse, error)
	Finalize(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.FinalizeSessionResponse, error)
	Abandon(ctx context.Context, sessionId string) error
}

type sessionService struct {
	catalog       CatalogSource
	sessionRepo   *memory.SessionRepository
	reportService IReportService
	exporter      ExportGateway
	logger        logger.ILogger
}

func NewSessionService(
	catalog CatalogSource,
	sessionRepo *memory.SessionRepository,
	reportService IReportService,
	exporter ExportGateway,
	sysLogger logger.ILogger,
) ISessionService {
	return &sessionService{
		catalog:       catalog,
		sessionRepo:   sessionRepo,
		reportService: reportService,
		exporter:      exporter,
		logger:        sysLogger,
	}
}

func (s *sessionService) ListForms(ctx context.Context) (*dto.FormListResponse, error) {
	forms, err := s.catalog.ListForms()
	if err != nil {
		return nil, err
	}
	return &dto.FormListResponse{Forms: forms}, nil
}

func (s *sessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionBlockResponse, error) {
	meta := entity.ReportMetadata{
		FormName:   req.FormName,
		Month:      req.Month,
		Year:       req.Year,
		ReportDate: req.ReportDate,
	}

	questions, err := s.catalog.Load(req.FormName)
	if err != nil {
		s.logger.Warn("SESSION", "Failed to load form", map[string]interface{}{
			"error": err.Error(),
			"form":  req.FormName,
		})
		return nil, err
	}

	session, err := questionnaire.NewSession(meta, questions)
	if err != nil {
		return nil, err
	}

	sessionId := uuid.New().String()
	s.sessionRepo.Save(sessionId, session)

	s.logger.Info("SESSION", "Session started", map[string]interface{}{
		"session_id": sessionId,
		"form":       req.FormName,
		"questions":  session.Len(),
	})

	return toBlockResponse(sessionId, session), nil
}

func (s *sessionService) Block(ctx context.Context, sessionId string) (*dto.SessionBlockResponse, error) {
	session, release, err := s.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()
	return toBlockResponse(sessionId, session), nil
}

func (s *sessionService) SaveAnswers(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.SaveAnswersResponse, error) {
	session, release, err := s.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()
	return applyAnswers(session, req), nil
}

// Next flushes the pending answers and moves forward. Moved is false on the
// last block, which tells the caller to finalize instead.
func (s *sessionService) Next(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.NavigateResponse, error) {
	session, release, err := s.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()
	applyAnswers(session, req)
	moved := session.Advance()

	return &dto.NavigateResponse{
		Moved: moved,
		Block: toBlockResponse(sessionId, session),
	}, nil
}

func (s *sessionService) Prev(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.NavigateResponse, error) {
	session, release, err := s.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()
	applyAnswers(session, req)
	before := session.Cursor()
	session.Retreat()

	return &dto.NavigateResponse{
		Moved: session.Cursor() != before,
		Block: toBlockResponse(sessionId, session),
	}, nil
}

func (s *sessionService) Check(ctx context.Context, sessionId string) (*dto.CompletenessResponse, error) {
	session, release, err := s.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()

	err = session.CheckComplete()
	var incomplete *questionnaire.IncompleteError
	if errors.As(err, &incomplete) {
		return &dto.CompletenessResponse{Complete: false, FirstUnanswered: incomplete.Ordinal}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.CompletenessResponse{Complete: true}, nil
}

// Finalize exports the artifact first and then persists the report. When the
// store rejects the report the artifact is discarded and the session stays
// available so the operator can retry. The session lock is held throughout,
// so a second finalize waits and then finds the session closed.
func (s *sessionService) Finalize(ctx context.Context, sessionId string, req *dto.SaveAnswersRequest) (*dto.FinalizeSessionResponse, error) {
	session, release, err := s.acquire(sessionId)
	if err != nil {
		return nil, err
	}
	defer release()
	applyAnswers(session, req)

	if err := session.CheckComplete(); err != nil {
		return nil, err
	}

	meta := session.Metadata()
	answers := session.Answers()

	path, err := s.exporter.Export(ctx, meta.ReportName(), meta, answers)
	if err != nil {
		s.logger.Error("SESSION", "Export failed", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionId,
		})
		return nil, fmt.Errorf("export report: %w", err)
	}

	reportId, err := s.reportService.Create(ctx, meta, answers, path)
	if err != nil {
		if derr := s.exporter.Discard(path); derr != nil {
			s.logger.Error("SESSION", "Failed to discard orphaned artifact", map[string]interface{}{
				"error": derr.Error(),
				"path":  path,
			})
		}
		return nil, fmt.Errorf("save report: %w", err)
	}

	s.sessionRepo.Delete(sessionId)
	s.logger.Info("SESSION", "Session finalized", map[string]interface{}{
		"session_id": sessionId,
		"report_id":  reportId,
	})

	return &dto.FinalizeSessionResponse{
		ReportId: reportId,
		FilePath: path,
		FileName: filepath.Base(path),
	}, nil
}

func (s *sessionService) Abandon(ctx context.Context, sessionId string) error {
	_, release, err := s.acquire(sessionId)
	if err != nil {
		return err
	}
	defer release()
	s.sessionRepo.Delete(sessionId)
	s.logger.Info("SESSION", "Session abandoned", map[string]interface{}{"session_id": sessionId})
	return nil
}

// acquire holds the session lock until release is called, so concurrent
// requests against one session run one after another.
func (s *sessionService) acquire(sessionId string) (*questionnaire.Session, func(), error) {
	session, release, found := s.sessionRepo.Acquire(sessionId)
	if !found {
		return nil, nil, ErrSessionNotFound
	}
	return session, release, nil
}

// applyAnswers writes flushed widget buffers into the session. Inputs with an
// unset decision or an index outside the catalog are skipped.
func applyAnswers(session *questionnaire.Session, req *dto.SaveAnswersRequest) *dto.SaveAnswersResponse {
	res := &dto.SaveAnswersResponse{Ignored: []int{}}
	if req == nil {
		return res
	}
	for _, in := range req.Answers {
		if session.SetAnswer(in.Index, entity.ParseDecision(in.Decision), in.Comment) {
			res.Applied++
		} else {
			res.Ignored = append(res.Ignored, in.Index)
		}
	}
	return res
}

func toBlockResponse(sessionId string, session *questionnaire.Session) *dto.SessionBlockResponse {
	start, end := session.CurrentBlock()
	res := &dto.SessionBlockResponse{
		SessionId:  sessionId,
		ReportName: session.Metadata().ReportName(),
		Start:      start,
		End:        end,
		Total:      session.Len(),
		IsFirst:    session.IsFirstBlock(),
		IsLast:     session.IsLastBlock(),
		Questions:  make([]dto.BlockQuestion, 0, end-start),
	}
	for i := start; i < end; i++ {
		q, _ := session.Question(i)
		a, _ := session.Answer(i)
		res.Questions = append(res.Questions, dto.BlockQuestion{
			Index:              i,
			Ordinal:            i + 1,
			Text:               q.Text,
			StandardReference:  q.StandardReference,
			QualityReference:   q.QualityReference,
			DocumentsReference: q.DocumentsReference,
			Decision:           a.Decision.String(),
			Comment:            a.Comment,
		})
	}
	return res
}
