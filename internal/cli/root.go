// Package cli is the operator command line: browsing forms and the report archive
// without the REST server.
package cli

import (
	"fmt"
	"os"

	"report-automation-be/internal/bootstrap"
	"report-automation-be/internal/config"
	"report-automation-be/internal/pkg/logger"
	"report-automation-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "reportctl",
		Short:        "Questionnaire report archive tool",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		formsCmd(),
		listCmd(),
		showCmd(),
		deleteCmd(),
		exportCmd(),
	)
	return cmd
}

// app is everything one command needs; opened per invocation.
type app struct {
	cfg       *config.Config
	db        *gorm.DB
	container *bootstrap.Container
}

func openApp() (*app, error) {
	cfg := config.Load()
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("create working folders: %w", err)
	}

	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	// Logs go to files only so they do not mix with command output.
	container := bootstrap.NewContainer(db, cfg, bootstrap.WithLoggers(
		logger.NewIsolatedLogger(cfg.App.LogFilePath),
		logger.NewIsolatedLogger(cfg.App.AuditLogFilePath),
	))

	return &app{cfg: cfg, db: db, container: container}, nil
}

func (a *app) Close() {
	_ = a.container.Close()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// withApp opens the application around fn and starts the audit consumer so
// archive changes made from the command line are logged too.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.container.ConsumerService.Consume(cmd.Context()); err != nil {
		return err
	}
	return fn(a)
}
