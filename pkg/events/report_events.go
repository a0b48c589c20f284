package events

import "time"

const (
	ReportCreated  = "REPORT_CREATED"
	ReportDeleted  = "REPORT_DELETED"
	ReportExported = "REPORT_EXPORTED"
)

func NewReportCreated(reportId int64, formName string, answers int, filePath string) BaseEvent {
	return BaseEvent{
		Type: ReportCreated,
		Data: map[string]interface{}{
			"report_id": reportId,
			"form_name": formName,
			"answers":   answers,
			"file_path": filePath,
		},
		OccurredAt: time.Now(),
	}
}

func NewReportDeleted(reportId int64) BaseEvent {
	return BaseEvent{
		Type:       ReportDeleted,
		Data:       map[string]interface{}{"report_id": reportId},
		OccurredAt: time.Now(),
	}
}

func NewReportExported(reportId int64, filePath string) BaseEvent {
	return BaseEvent{
		Type: ReportExported,
		Data: map[string]interface{}{
			"report_id": reportId,
			"file_path": filePath,
		},
		OccurredAt: time.Now(),
	}
}
