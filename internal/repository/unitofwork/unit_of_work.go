package unitofwork

import (
	"context"

	"report-automation-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ReportRepository() contract.ReportRepository
	AnswerRepository() contract.AnswerRepository
}
