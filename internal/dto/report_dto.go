package dto

import "time"

type ListReportsRequest struct {
	FormName string `query:"form_name"`
	Month    string `query:"month"`
	Year     int    `query:"year" validate:"omitempty,gte=1900,lte=9999"`
	Limit    int    `query:"limit" validate:"omitempty,gte=1,lte=1000"`
	Offset   int    `query:"offset" validate:"omitempty,gte=0"`
}

type ReportSummaryResponse struct {
	Id         int64     `json:"id"`
	FormName   string    `json:"form_name"`
	Month      string    `json:"month"`
	Year       int       `json:"year"`
	ReportDate string    `json:"report_date"`
	CreatedAt  time.Time `json:"created_at"`
	FilePath   string    `json:"file_path"`
}

type ReportAnswerResponse struct {
	Id                 int64  `json:"id"`
	QuestionText       string `json:"question_text"`
	Decision           string `json:"decision"` // stored label, "Да" | "Нет"
	Comment            string `json:"comment"`
	StandardReference  string `json:"standard_reference"`
	QualityReference   string `json:"quality_reference"`
	DocumentsReference string `json:"documents_reference"`
}

type ShowReportResponse struct {
	ReportSummaryResponse
	Answers []ReportAnswerResponse `json:"answers"`
}

type ExportReportResponse struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}
