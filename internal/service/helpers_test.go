package service

import (
	"path/filepath"
	"testing"

	"report-automation-be/internal/entity"
	"report-automation-be/internal/pkg/logger"
	"report-automation-be/internal/repository/unitofwork"
	"report-automation-be/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   database.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "reports.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(newTestDB(t))
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}

func testMeta() entity.ReportMetadata {
	return entity.ReportMetadata{
		FormName:   "Входной контроль",
		Month:      "Апрель",
		Year:       2025,
		ReportDate: "30.04.2025",
	}
}

func answered(decisions ...entity.Decision) []entity.Answer {
	out := make([]entity.Answer, len(decisions))
	for i, d := range decisions {
		out[i] = entity.Answer{
			QuestionText:       "Вопрос " + string(rune('A'+i)),
			StandardReference:  "ГОСТ " + string(rune('A'+i)),
			QualityReference:   "СМК " + string(rune('A'+i)),
			DocumentsReference: "Док " + string(rune('A'+i)),
			Decision:           d,
		}
	}
	return out
}
