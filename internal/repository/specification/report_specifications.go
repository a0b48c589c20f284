package specification

import "gorm.io/gorm"

// ByReportID filters answers of one report
type ByReportID struct {
	ReportID int64
}

func (s ByReportID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("report_id = ?", s.ReportID)
}

// ByFormName filters reports created from one form
type ByFormName struct {
	FormName string
}

func (s ByFormName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("form_name = ?", s.FormName)
}

// ByPeriod filters reports by month and year. Empty month matches the whole year.
type ByPeriod struct {
	Month string
	Year  int
}

func (s ByPeriod) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("year = ?", s.Year)
	if s.Month != "" {
		db = db.Where("month = ?", s.Month)
	}
	return db
}

// NewestFirst orders reports by creation time, most recent first.
// Ties are broken by id so reports created within the same clock tick keep a stable order.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// InsertionOrder orders answers the way they were written.
type InsertionOrder struct{}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
