package model

import "time"

type Report struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	FormName   string    `gorm:"type:varchar(255);not null"`
	Month      string    `gorm:"type:varchar(32);not null"`
	Year       int       `gorm:"not null"`
	ReportDate string    `gorm:"type:varchar(32);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;not null;index:idx_reports_created_at"`
	FilePath   string    `gorm:"type:text;not null"`
}

func (Report) TableName() string {
	return "reports"
}
