package implementation

import (
	"context"

	"report-automation-be/internal/entity"
	"report-automation-be/internal/mapper"
	"report-automation-be/internal/model"
	"report-automation-be/internal/repository/contract"
	"report-automation-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnswerMapper
}

func NewAnswerRepository(db *gorm.DB) contract.AnswerRepository {
	return &AnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnswerMapper(),
	}
}

func (r *AnswerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnswerRepositoryImpl) Create(ctx context.Context, answer *entity.StoredAnswer) error {
	m := r.mapper.ToModel(answer)
	if err := r.db.WithContext(ctx).Omit("Report").Create(m).Error; err != nil {
		return err
	}
	*answer = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnswerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StoredAnswer, error) {
	var models []*model.Answer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AnswerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Answer{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
