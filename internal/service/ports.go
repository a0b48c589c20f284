package service

import (
	"context"

	"report-automation-be/internal/entity"
)

// ExportGateway renders answers into an artifact and returns its location.
// It must not touch sessions or the store.
type ExportGateway interface {
	Export(ctx context.Context, reportName string, meta entity.ReportMetadata, answers []entity.Answer) (string, error)
	Discard(path string) error
}

// CatalogSource supplies form templates as ordered questions.
type CatalogSource interface {
	ListForms() ([]string, error)
	Load(formName string) ([]entity.Question, error)
}
