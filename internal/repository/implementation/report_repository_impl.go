package implementation

import (
	"context"
	"errors"

	"report-automation-be/internal/entity"
	"report-automation-be/internal/mapper"
	"report-automation-be/internal/model"
	"report-automation-be/internal/repository/contract"
	"report-automation-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewReportRepository(db *gorm.DB) contract.ReportRepository {
	return &ReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *ReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *entity.Report) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	answers := report.Answers
	*report = *r.mapper.ToEntity(m)
	report.Answers = answers
	return nil
}

// Delete removes the report row; answers go with it through the foreign key.
func (r *ReportRepositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Report{}, id).Error
}

func (r *ReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	var m model.Report
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	var models []*model.Report
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Report{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
