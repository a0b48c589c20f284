package contract

import (
	"context"

	"report-automation-be/internal/entity"
	"report-automation-be/internal/repository/specification"
)

type AnswerRepository interface {
	Create(ctx context.Context, answer *entity.StoredAnswer) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StoredAnswer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
