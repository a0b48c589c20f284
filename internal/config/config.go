package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Session  SessionConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	EventsTopic        string
}

type DatabaseConfig struct {
	Driver     string // "sqlite" or "postgres"
	Connection string
}

// StorageConfig holds the working folders of the application.
type StorageConfig struct {
	FormsDir     string
	ReportsDir   string
	TemplatesDir string
}

type SessionConfig struct {
	TTL time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			EventsTopic:        getEnv("EVENTS_TOPIC", "REPORT_EVENTS"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Connection: getEnv("DB_CONNECTION_STRING", "reports.db"),
		},
		Storage: StorageConfig{
			FormsDir:     getEnv("FORMS_DIR", "формы"),
			ReportsDir:   getEnv("REPORTS_DIR", "отчеты"),
			TemplatesDir: getEnv("TEMPLATES_DIR", "шаблоны"),
		},
		Session: SessionConfig{
			TTL: time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 240)) * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// EnsureDirectories creates the forms, reports and templates folders.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Storage.FormsDir, c.Storage.ReportsDir, c.Storage.TemplatesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
