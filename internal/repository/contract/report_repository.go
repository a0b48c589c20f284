package contract

import (
	"context"

	"report-automation-be/internal/entity"
	"report-automation-be/internal/repository/specification"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id int64) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
