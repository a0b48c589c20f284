package model

// Answer rows are removed together with their report (ON DELETE CASCADE).
type Answer struct {
	Id                 int64   `gorm:"primaryKey;autoIncrement"`
	ReportId           int64   `gorm:"not null;index:idx_answers_report_id"`
	Report             *Report `gorm:"foreignKey:ReportId;references:Id;constraint:OnDelete:CASCADE"`
	QuestionText       string  `gorm:"type:text;not null"`
	DecisionLabel      string  `gorm:"type:varchar(8);not null;check:chk_answers_decision_label,decision_label IN ('Да','Нет')"`
	Comment            *string `gorm:"type:text"`
	StandardReference  string  `gorm:"type:text"`
	QualityReference   string  `gorm:"type:text"`
	DocumentsReference string  `gorm:"type:text"`
}

func (Answer) TableName() string {
	return "answers"
}

// All returns every model owned by the report store, parents first.
func All() []interface{} {
	return []interface{}{
		&Report{},
		&Answer{},
	}
}
