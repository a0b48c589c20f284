package mapper

import (
	"report-automation-be/internal/entity"
	"report-automation-be/internal/model"
)

type ReportMapper struct{}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}
	return &entity.Report{
		Id:         r.Id,
		FormName:   r.FormName,
		Month:      r.Month,
		Year:       r.Year,
		ReportDate: r.ReportDate,
		CreatedAt:  r.CreatedAt,
		FilePath:   r.FilePath,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}
	return &model.Report{
		Id:         r.Id,
		FormName:   r.FormName,
		Month:      r.Month,
		Year:       r.Year,
		ReportDate: r.ReportDate,
		CreatedAt:  r.CreatedAt,
		FilePath:   r.FilePath,
	}
}

func (m *ReportMapper) ToEntities(reports []*model.Report) []*entity.Report {
	entities := make([]*entity.Report, len(reports))
	for i, r := range reports {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
