package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"report-automation-be/internal/dto"
	"report-automation-be/internal/entity"
	"report-automation-be/internal/pkg/logger"
	"report-automation-be/internal/repository/specification"
	"report-automation-be/internal/repository/unitofwork"
	"report-automation-be/pkg/events"
)

type IReportService interface {
	Create(ctx context.Context, meta entity.ReportMetadata, answers []entity.Answer, filePath string) (int64, error)
	List(ctx context.Context, req *dto.ListReportsRequest) ([]*dto.ReportSummaryResponse, error)
	Show(ctx context.Context, id int64) (*dto.ShowReportResponse, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, id int64) (*dto.ExportReportResponse, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
	exporter   ExportGateway
	publisher  IPublisherService
	logger     logger.ILogger
	now        func() time.Time
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	exporter ExportGateway,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory: uowFactory,
		exporter:   exporter,
		publisher:  publisher,
		logger:     sysLogger,
		now:        time.Now,
	}
}

// Create writes the report row and every answer row in one transaction.
// Nothing is visible unless all inserts succeed.
func (s *reportService) Create(ctx context.Context, meta entity.ReportMetadata, answers []entity.Answer, filePath string) (int64, error) {
	if len(answers) == 0 {
		return 0, ErrEmptyReport
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	report := &entity.Report{
		FormName:   meta.FormName,
		Month:      meta.Month,
		Year:       meta.Year,
		ReportDate: meta.ReportDate,
		CreatedAt:  s.now(),
		FilePath:   filePath,
	}
	if err := uow.ReportRepository().Create(ctx, report); err != nil {
		s.logger.Error("REPORT", "Failed to insert report", map[string]interface{}{"error": err.Error()})
		return 0, fmt.Errorf("insert report: %w", err)
	}

	// One row at a time keeps the id order equal to the questionnaire order.
	for i, a := range answers {
		stored := entity.NewStoredAnswer(report.Id, a)
		if err := uow.AnswerRepository().Create(ctx, stored); err != nil {
			s.logger.Error("REPORT", "Failed to insert answer, rolling back", map[string]interface{}{
				"error":   err.Error(),
				"ordinal": i + 1,
			})
			return 0, fmt.Errorf("insert answer %d: %w", i+1, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("commit report: %w", err)
	}

	s.logger.Info("REPORT", "Report saved", map[string]interface{}{
		"report_id": report.Id,
		"answers":   len(answers),
	})
	s.publish(ctx, events.NewReportCreated(report.Id, report.FormName, len(answers), filePath))

	return report.Id, nil
}

func (s *reportService) List(ctx context.Context, req *dto.ListReportsRequest) ([]*dto.ReportSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	specs := []specification.Specification{}
	if req != nil {
		if req.FormName != "" {
			specs = append(specs, specification.ByFormName{FormName: req.FormName})
		}
		if req.Year != 0 {
			specs = append(specs, specification.ByPeriod{Month: req.Month, Year: req.Year})
		} else if req.Month != "" {
			specs = append(specs, specification.Filter("month", req.Month))
		}
	}
	specs = append(specs, specification.NewestFirst{})
	if req != nil && req.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: req.Limit, Offset: req.Offset})
	}

	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	result := make([]*dto.ReportSummaryResponse, 0, len(reports))
	for _, r := range reports {
		summary := toSummary(r)
		result = append(result, &summary)
	}
	return result, nil
}

func (s *reportService) Show(ctx context.Context, id int64) (*dto.ShowReportResponse, error) {
	report, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowReportResponse{
		ReportSummaryResponse: toSummary(report),
		Answers:               make([]dto.ReportAnswerResponse, 0, len(report.Answers)),
	}
	for _, a := range report.Answers {
		res.Answers = append(res.Answers, dto.ReportAnswerResponse{
			Id:                 a.Id,
			QuestionText:       a.QuestionText,
			Decision:           a.Decision.Label(),
			Comment:            a.Comment,
			StandardReference:  a.StandardReference,
			QualityReference:   a.QualityReference,
			DocumentsReference: a.DocumentsReference,
		})
	}
	return res, nil
}

// Delete removes the report and, through the cascade, its answers.
// Unknown ids are not an error.
func (s *reportService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if existing == nil {
		return uow.Commit()
	}

	if err := uow.ReportRepository().Delete(ctx, id); err != nil {
		s.logger.Error("REPORT", "Failed to delete report", map[string]interface{}{
			"error":     err.Error(),
			"report_id": id,
		})
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	s.logger.Info("REPORT", "Report deleted", map[string]interface{}{"report_id": id})
	s.publish(ctx, events.NewReportDeleted(id))
	return nil
}

// Export renders a stored report again. The stored file path is left as is.
func (s *reportService) Export(ctx context.Context, id int64) (*dto.ExportReportResponse, error) {
	report, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	meta := report.Metadata()
	path, err := s.exporter.Export(ctx, meta.ReportName(), meta, report.AnswerValues())
	if err != nil {
		s.logger.Error("REPORT", "Failed to export report", map[string]interface{}{
			"error":     err.Error(),
			"report_id": id,
		})
		return nil, fmt.Errorf("export report %d: %w", id, err)
	}

	s.publish(ctx, events.NewReportExported(id, path))
	return &dto.ExportReportResponse{
		FilePath: path,
		FileName: filepath.Base(path),
	}, nil
}

// load reads the report and its answers inside one transaction so both come
// from the same snapshot.
func (s *reportService) load(ctx context.Context, id int64) (*entity.Report, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	report, err := uow.ReportRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	answers, err := uow.AnswerRepository().FindAll(ctx,
		specification.ByReportID{ReportID: id},
		specification.InsertionOrder{},
	)
	if err != nil {
		return nil, err
	}
	report.Answers = answers

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("REPORT", "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
			"type":  event.EventType(),
		})
	}
}

func toSummary(r *entity.Report) dto.ReportSummaryResponse {
	return dto.ReportSummaryResponse{
		Id:         r.Id,
		FormName:   r.FormName,
		Month:      r.Month,
		Year:       r.Year,
		ReportDate: r.ReportDate,
		CreatedAt:  r.CreatedAt,
		FilePath:   r.FilePath,
	}
}
