package unitofwork

import (
	"context"
	"errors"

	"report-automation-be/internal/repository/contract"
	"report-automation-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTransactionActive = errors.New("transaction already started")
	ErrNoTransaction     = errors.New("no active transaction")
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTransactionActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is safe to defer after a successful Commit; it then returns ErrNoTransaction.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ReportRepository() contract.ReportRepository {
	return implementation.NewReportRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AnswerRepository() contract.AnswerRepository {
	return implementation.NewAnswerRepository(u.getDB())
}
