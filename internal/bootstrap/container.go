package bootstrap

import (
	"report-automation-be/internal/catalog"
	"report-automation-be/internal/config"
	"report-automation-be/internal/controller"
	"report-automation-be/internal/export"
	"report-automation-be/internal/pkg/logger"
	"report-automation-be/internal/repository/memory"
	"report-automation-be/internal/repository/unitofwork"
	"report-automation-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ReportController  controller.IReportController

	// Services, used directly by the operator CLI
	SessionService service.ISessionService
	ReportService  service.IReportService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	pubSub *gochannel.GoChannel
	audit  logger.ILogger
}

type Option func(*options)

type options struct {
	sysLogger   logger.ILogger
	auditLogger logger.ILogger
}

// WithLoggers replaces the file backed loggers, e.g. with a nop logger in tests.
func WithLoggers(sysLogger, auditLogger logger.ILogger) Option {
	return func(o *options) {
		o.sysLogger = sysLogger
		o.auditLogger = auditLogger
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config, opts ...Option) *Container {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := o.sysLogger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	auditLogger := o.auditLogger
	if auditLogger == nil {
		auditLogger = logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	// Publishing waits for the audit consumer so short lived CLI runs keep their trail.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{BlockPublishUntilSubscriberAck: true},
		watermillLogger,
	)

	// 3. Gateways
	formCatalog := catalog.NewLoader(cfg.Storage.FormsDir)
	exporter := export.NewExcelExporter(cfg.Storage.ReportsDir)
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, auditLogger)
	reportService := service.NewReportService(uowFactory, exporter, publisherService, sysLogger)
	sessionService := service.NewSessionService(formCatalog, sessionRepo, reportService, exporter, sysLogger)

	// 5. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		ReportController:  controller.NewReportController(reportService),
		SessionService:    sessionService,
		ReportService:     reportService,
		ConsumerService:   consumerService,
		Logger:            sysLogger,
		pubSub:            pubSub,
		audit:             auditLogger,
	}
}

// Close stops the event bus and flushes the loggers.
func (c *Container) Close() error {
	err := c.pubSub.Close()
	_ = c.Logger.Sync()
	_ = c.audit.Sync()
	return err
}
